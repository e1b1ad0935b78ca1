package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fittrack-session||"
	tokensSetKey     = "fittrack-sessions"
	tokenIssuer      = "fittrack"
	minPasswordLen   = 8
)

type usersRepo interface {
	Add(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service is the identity provider: it owns accounts and issues tokens.
// Every issued token is a JWT whose subject is the owner id of all the caller's records.
// The token id is registered in redis, so a logout revokes the token before it expires.
type Service struct {
	users       usersRepo
	redisClient *redis.Client
	jwtSecret   []byte
	ttl         time.Duration
	// ability to inject token id generator and clock (for unit and dev testing)
	RandStringFunc func(n int) (string, error)
	NowFunc        func() time.Time
}

func NewAuthService(
	users usersRepo,
	jwtSecret string,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		redisClient:    redisClient,
		jwtSecret:      []byte(jwtSecret),
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

func (as *Service) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", access.InvalidArgument("username empty")
	}
	if len(password) < minPasswordLen {
		return "", access.InvalidArgument("password shorter than %d characters", minPasswordLen)
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    as.NowFunc(),
	}
	if err := as.users.Add(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return "", access.InvalidArgument("username [%s] taken", username)
		}
		return "", fmt.Errorf("add user: %w", err)
	}

	return user.ID, nil
}

// Login checks the credentials and returns a new signed token.
func (as *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrWrongCredentials
	}
	if err != nil {
		return "", err
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrWrongCredentials
	}

	return as.IssueToken(ctx, user.ID)
}

// IssueToken signs a token for the given owner id and registers its session.
func (as *Service) IssueToken(ctx context.Context, userID string) (string, error) {
	tokenID, err := as.RandStringFunc(24)
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	now := as.NowFunc()
	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Subject:   userID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := sessionKeyPrefix + tokenID
	if err := as.redisClient.Set(ctx, sessionKey, userID, as.ttl).Err(); err != nil {
		return "", err
	}

	// add token id to the set of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, tokenID).Err(); err != nil {
		return "", err
	}

	return signed, nil
}

// Logout revokes the session of the given token.
func (as *Service) Logout(ctx context.Context, token string) error {
	claims, err := parseToken(token, as.jwtSecret, as.NowFunc)
	if err != nil {
		return err
	}

	sessionKey := sessionKeyPrefix + claims.ID
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("session not found: %w", access.ErrUnauthorized)
	}

	// remove token id from the set of sessions
	return as.redisClient.SRem(ctx, tokensSetKey, claims.ID).Err()
}

// ScanAndClean drops ids of expired sessions from the sessions set.
// The session keys themselves expire in redis.
func (as *Service) ScanAndClean(ctx context.Context) {
	tokenIDs, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(tokenIDs) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(tokenIDs))
	removed := 0
	for _, tokenID := range tokenIDs {
		exists, err := as.redisClient.Exists(ctx, sessionKeyPrefix+tokenID).Result()
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", tokenID, err)
			continue
		}
		if exists > 0 {
			continue
		}

		if err := as.redisClient.SRem(ctx, tokensSetKey, tokenID).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", tokenID, err)
			continue
		}
		removed++
	}
	log.Debugf("=> auth service, scan and clean done, removed %d", removed)
}

func parseToken(token string, secret []byte, now func() time.Time) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w: %w", access.ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("token without subject or id: %w", access.ErrUnauthorized)
	}
	return claims, nil
}
