package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"

	"github.com/2beens/gymapi/internal/assessments"
	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/config"
	"github.com/2beens/gymapi/internal/db"
	"github.com/2beens/gymapi/internal/delivery"
	"github.com/2beens/gymapi/internal/middleware"
	"github.com/2beens/gymapi/internal/nutrition"
	"github.com/2beens/gymapi/internal/reports"
	"github.com/2beens/gymapi/internal/telemetry/metrics"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
	"github.com/2beens/gymapi/internal/workouts"
	"github.com/2beens/gymapi/pkg"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	authService *auth.Service
	rateLimiter middleware.RequestRateLimiter

	renderer   *reports.Renderer
	dispatcher *delivery.Dispatcher

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	SMTPPassword            string
	UltraMsgToken           string
	DriveCredentialsFile    string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.DBPassword,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gym", "api", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gym-api", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	dispatcher, err := newDispatcher(ctx, params, dbPool, tracedHttpClient, metricsManager)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient: rdb,
		authService: authService,
		rateLimiter: redis_rate.NewLimiter(rdb),

		renderer:   reports.NewRenderer(params.Config.ReportCacheSizeMB*1024*1024, metricsManager),
		dispatcher: dispatcher,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// newDispatcher wires the delivery channels. The Google Drive archive is used only when
// service account credentials are provided.
func newDispatcher(
	ctx context.Context,
	params NewServerParams,
	dbPool *pgxpool.Pool,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) (*delivery.Dispatcher, error) {
	cfg := params.Config
	mailer := delivery.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, params.SMTPPassword, cfg.SMTPFrom)
	whatsApp := delivery.NewWhatsApp(cfg.UltraMsgBaseURL, cfg.UltraMsgInstance, params.UltraMsgToken, httpClient)
	logsRepo := delivery.NewRepo(dbPool)

	if params.DriveCredentialsFile == "" {
		log.Infoln("drive archive disabled, no credentials provided")
		return delivery.NewDispatcher(mailer, whatsApp, nil, logsRepo, metricsManager), nil
	}

	archiver, err := delivery.NewDriveArchiver(ctx, cfg.DriveFolderID, option.WithCredentialsFile(params.DriveCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("new drive archiver: %w", err)
	}
	log.Infof("archiving dispatched reports to drive folder [%s]", archiver.FolderID())

	return delivery.NewDispatcher(mailer, whatsApp, archiver, logsRepo, metricsManager), nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gym-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteMessage(w, "gym api "+s.versionInfo, http.StatusOK)
	}).Methods("GET").Name("root")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "ok")
	}).Methods("GET").Name("health")

	usersRepo := users.NewRepo(s.dbPool)

	// auth
	authHandler := auth.NewHandler(usersRepo, s.authService)
	rateLimit := middleware.RateLimit(s.rateLimiter, "auth", s.config.LoginRateLimitAllowedPerMin, s.metricsManager)
	r.HandleFunc("/auth/register", rateLimit(authHandler.HandleRegister)).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/auth/login", rateLimit(authHandler.HandleLogin)).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/auth/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	usersHandler := users.NewHandler(usersRepo)
	r.HandleFunc("/students/search", professionals(usersHandler.HandleSearchStudents)).Methods("GET", "OPTIONS").Name("search-students")

	// assessments
	assessmentsHandler := assessments.NewHandler(assessments.NewService(
		assessments.NewRepo(s.dbPool),
		usersRepo,
		s.renderer,
		s.dispatcher,
		s.metricsManager,
	))
	r.HandleFunc("/assessments", professionals(assessmentsHandler.HandleCreate)).Methods("POST", "OPTIONS").Name("new-assessment")
	r.HandleFunc("/assessments", assessmentsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-assessments")
	r.HandleFunc("/assessments/evolution/{studentId:[0-9]+}", assessmentsHandler.HandleEvolution).Methods("GET", "OPTIONS").Name("assessments-evolution")
	r.HandleFunc("/assessments/{id:[0-9]+}", assessmentsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}", professionals(assessmentsHandler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}", professionals(assessmentsHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}/pdf", assessmentsHandler.HandlePDF).Methods("GET", "OPTIONS").Name("assessment-pdf")
	r.HandleFunc("/assessments/{id:[0-9]+}/send/{channel}", professionals(assessmentsHandler.HandleSend)).Methods("POST", "OPTIONS").Name("send-assessment")

	// nutrition
	nutritionHandler := nutrition.NewHandler(nutrition.NewService(
		nutrition.NewRepo(s.dbPool),
		usersRepo,
		s.renderer,
		s.dispatcher,
	))
	nutritionist := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireRoles(next, users.RoleNutritionist)
	}
	r.HandleFunc("/nutrition/plans", nutritionist(nutritionHandler.HandleCreate)).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/nutrition/plans", nutritionHandler.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}", nutritionHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}", nutritionist(nutritionHandler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-plan")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}", nutritionist(nutritionHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-plan")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}/pdf", nutritionHandler.HandlePDF).Methods("GET", "OPTIONS").Name("plan-pdf")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}/send/{channel}", nutritionist(nutritionHandler.HandleSend)).Methods("POST", "OPTIONS").Name("send-plan")

	// workouts
	workoutsHandler := workouts.NewHandler(workouts.NewService(workouts.NewRepo(s.dbPool), usersRepo))
	trainer := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireRoles(next, users.RoleTrainer)
	}
	r.HandleFunc("/exercises", middleware.RequireRoles(workoutsHandler.HandleAddExercise, users.RoleTrainer, users.RoleAdmin)).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises", workoutsHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/workouts/plans", trainer(workoutsHandler.HandleCreatePlan)).Methods("POST", "OPTIONS").Name("new-workout-plan")
	r.HandleFunc("/workouts/trainer", trainer(workoutsHandler.HandleTrainerWorkouts)).Methods("GET", "OPTIONS").Name("trainer-workouts")
	r.HandleFunc("/workouts/student", middleware.RequireRoles(workoutsHandler.HandleOwnWorkouts, users.RoleStudent)).Methods("GET", "OPTIONS").Name("own-workouts")
	r.HandleFunc("/workouts/student/{id:[0-9]+}", trainer(workoutsHandler.HandleStudentWorkouts)).Methods("GET", "OPTIONS").Name("student-workouts")
	r.HandleFunc("/workouts/{id:[0-9]+}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}", trainer(workoutsHandler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}", trainer(workoutsHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-workout")

	// admin
	logsHandler := delivery.NewAdminHandler(delivery.NewRepo(s.dbPool))
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireRoles(next, users.RoleAdmin)
	}
	r.HandleFunc("/admin/logs", admin(logsHandler.HandleList)).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/admin/logs", admin(logsHandler.HandleDeleteAll)).Methods("DELETE", "OPTIONS").Name("delete-logs")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func professionals(next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireRoles(next, users.RoleTrainer, users.RoleNutritionist)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
