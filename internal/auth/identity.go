package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymapi/internal/users"
)

// Identity is what a session resolves to; stored in redis and put in the request context.
type Identity struct {
	UserID    int        `json:"userId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      users.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (i *Identity) HasRole(roles ...users.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

type identityCtxKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
