package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal"
	"github.com/2beens/gymapi/internal/config"
	"github.com/2beens/gymapi/internal/logging"
	"github.com/2beens/gymapi/pkg"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	closeLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "gym-api",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	secrets := loadSecrets()

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			DBPassword:              secrets.dbPassword,
			RedisPassword:           secrets.redisPassword,
			SMTPPassword:            secrets.smtpPassword,
			UltraMsgToken:           secrets.ultraMsgToken,
			DriveCredentialsFile:    secrets.driveCredentialsFile,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
	closeLogs()
}

type envSecrets struct {
	dbPassword           string
	redisPassword        string
	smtpPassword         string
	ultraMsgToken        string
	driveCredentialsFile string
}

// loadSecrets reads every credential from the environment. Missing delivery credentials only
// disable that channel, a missing drive credentials file given by path is fatal.
func loadSecrets() envSecrets {
	secrets := envSecrets{
		dbPassword:           os.Getenv("GYM_DB_PASS"),
		redisPassword:        os.Getenv("GYM_REDIS_PASS"),
		smtpPassword:         os.Getenv("GYM_SMTP_PASSWORD"),
		ultraMsgToken:        os.Getenv("GYM_ULTRAMSG_TOKEN"),
		driveCredentialsFile: os.Getenv("GYM_DRIVE_CREDENTIALS_FILE"),
	}

	for envVar, value := range map[string]string{
		"GYM_DB_PASS":        secrets.dbPassword,
		"GYM_REDIS_PASS":     secrets.redisPassword,
		"GYM_SMTP_PASSWORD":  secrets.smtpPassword,
		"GYM_ULTRAMSG_TOKEN": secrets.ultraMsgToken,
	} {
		if value == "" {
			log.Warnf("%s not set", envVar)
		}
	}

	if secrets.driveCredentialsFile != "" {
		exists, err := pkg.PathExists(secrets.driveCredentialsFile, false)
		if err != nil || !exists {
			log.Fatalf("drive credentials file [%s] not found: %v", secrets.driveCredentialsFile, err)
		}
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	return secrets
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
