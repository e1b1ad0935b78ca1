package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/access"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*LoginChecker)(nil)

// Checker resolves the caller's owner id from a request token.
type Checker interface {
	UserID(ctx context.Context, token string) (string, error)
}

type LoginChecker struct {
	redisClient *redis.Client
	jwtSecret   []byte
	NowFunc     func() time.Time
}

func NewLoginChecker(jwtSecret string, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
		jwtSecret:   []byte(jwtSecret),
		NowFunc:     time.Now,
	}
}

// UserID validates the token and its live session, returning the token subject.
// All failures wrap access.ErrUnauthorized.
func (lc *LoginChecker) UserID(ctx context.Context, token string) (string, error) {
	claims, err := parseToken(token, lc.jwtSecret, lc.NowFunc)
	if err != nil {
		return "", err
	}

	sessionUserID, err := lc.redisClient.Get(ctx, sessionKeyPrefix+claims.ID).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session revoked or expired: %w", access.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	if sessionUserID != claims.Subject {
		return "", fmt.Errorf("session subject mismatch: %w", access.ErrUnauthorized)
	}

	return claims.Subject, nil
}
