package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
	"github.com/2beens/gymapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=auth_test

type usersRepo interface {
	Add(ctx context.Context, user users.User) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

type sessionService interface {
	Login(ctx context.Context, identity Identity) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string     `json:"token"`
	UserID int        `json:"userId"`
	Name   string     `json:"name"`
	Role   users.Role `json:"role"`
}

type RegisterResponse struct {
	ID   int        `json:"id"`
	Role users.Role `json:"role"`
}

type Handler struct {
	repo     usersRepo
	sessions sessionService
}

func NewHandler(repo usersRepo, sessions sessionService) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req users.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "invalid register request", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Tracef("register, invalid request: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Add(ctx, req.ToUser(passwordHash))
	if errors.Is(err, users.ErrEmailTaken) {
		http.Error(w, "email already registered", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("register, add user [%s]: %s", req.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %d [%s]", user.ID, user.Role)
	pkg.WriteJSON(w, RegisterResponse{ID: user.ID, Role: user.Role}, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "invalid login request", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, creds.Email)
	if errors.Is(err, users.ErrUserNotFound) {
		log.Tracef("login, unknown user [%s]", creds.Email)
		http.Error(w, "wrong credentials", http.StatusUnauthorized)
		return
	} else if err != nil {
		log.Errorf("login, get user [%s]: %s", creds.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !user.Active || !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("login, wrong password or inactive user [%s]", creds.Email)
		http.Error(w, "wrong credentials", http.StatusUnauthorized)
		return
	}

	token, err := handler.sessions.Login(ctx, Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Errorf("login, create session for user %d: %s", user.ID, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, LoginResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteMessage(w, "logged out", http.StatusOK)
}
