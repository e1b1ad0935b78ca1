package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

type authService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	service authService
	metrics *metrics.Manager
}

func NewHandler(service authService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func readCredentials(r *http.Request) (Credentials, error) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return creds, err
	}
	if creds.Username == "" || creds.Password == "" {
		return creds, errors.New("username or password empty")
	}
	return creds, nil
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Tracef("register, read credentials: %s", err)
		http.Error(w, "error, invalid credentials", http.StatusBadRequest)
		return
	}

	userID, err := h.service.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		log.Errorf("register [%s]: %s", creds.Username, err)
		http.Error(w, access.HTTPMessage(err), access.HTTPStatus(err))
		return
	}

	log.Debugf("new user registered: %s", userID)
	pkg.WriteJSON(w, RegisterResponse{UserID: userID}, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Tracef("login, read credentials: %s", err)
		http.Error(w, "error, invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(ctx, creds.Username, creds.Password)
	if errors.Is(err, ErrWrongCredentials) {
		log.Tracef("failed login attempt for user: %s", creds.Username)
		h.metrics.CounterLogins.WithLabelValues("failed").Inc()
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	h.metrics.CounterLogins.WithLabelValues("success").Inc()
	log.Trace("new login success")
	pkg.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(ctx, token); err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", access.HTTPStatus(err))
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
