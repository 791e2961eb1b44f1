package middleware

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
)

//go:generate mockgen -source=$GOFILE -destination=middleware_mocks_test.go -package=middleware_test

type sessionChecker interface {
	Session(ctx context.Context, token string) (*auth.Identity, error)
}

type AuthMiddlewareHandler struct {
	sessions     sessionChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(sessions sessionChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessions: sessions,
		allowedPaths: map[string]bool{
			"/":              true,
			"/health":        true,
			"/auth/login":    true,
			"/auth/register": true,
		},
	}
}

// AuthCheck resolves the bearer token to an identity and stores it in the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := auth.BearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			identity, err := h.sessions.Session(ctx, token)
			if err != nil {
				if errors.Is(err, auth.ErrSessionNotFound) || errors.Is(err, auth.ErrSessionExpired) {
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				} else {
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					span.RecordError(err)
				}
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetAttributes(
				attribute.Int("user.id", identity.UserID),
				attribute.String("user.role", string(identity.Role)),
			)
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRoles lets the request through only if the authenticated identity has one of the roles.
func RequireRoles(next http.HandlerFunc, roles ...users.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		if !identity.HasRole(roles...) {
			log.Tracef("[forbidden] user %d [%s] => %s", identity.UserID, identity.Role, r.URL.Path)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
