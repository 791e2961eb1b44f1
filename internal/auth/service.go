package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "gym-api-session||"
	tokensSetKey     = "gym-api-sessions"
	tokenLength      = 35
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login creates a new session for the identity and returns its token.
func (as *Service) Login(ctx context.Context, identity Identity) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	identityJson, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}

	if err := as.redisClient.Set(ctx, sessionKeyPrefix+token, string(identityJson), as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}

	return token, nil
}

// Session resolves a token to the identity it was issued for.
func (as *Service) Session(ctx context.Context, token string) (_ *Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.session")
	defer func() {
		if err != nil && !errors.Is(err, ErrSessionNotFound) {
			tracing.EndSpanWithErrCheck(span, err)
			return
		}
		span.End()
	}()

	if token == "" {
		return nil, ErrSessionNotFound
	}

	identity, err := as.getIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Since(identity.CreatedAt) > as.ttl {
		return nil, ErrSessionExpired
	}

	return identity, nil
}

// Logout revokes the session. Returns false if there was no such session.
func (as *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	deleted, err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("unregister session: %w", err)
	}

	return deleted > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		identity, err := as.getIdentity(ctx, token)
		if errors.Is(err, ErrSessionNotFound) {
			// expired by redis already, only the set member is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token: %s", err)
			continue
		}

		if time.Since(identity.CreatedAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean session: %s", err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean session: %s", err)
			continue
		}
	}
	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}

func (as *Service) getIdentity(ctx context.Context, token string) (*Identity, error) {
	val, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &identity, nil
}
