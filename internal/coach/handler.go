package coach

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coach_test

type coachService interface {
	Ask(ctx context.Context, userID, message string) (*Reply, error)
}

type AskRequest struct {
	Message string `json:"message"`
}

type Handler struct {
	service coachService
}

func NewHandler(service coachService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.ask")
	defer span.End()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("coach ask, unmarshal json params: %s", err)
		http.Error(w, "error, invalid message", http.StatusBadRequest)
		return
	}

	reply, err := h.service.Ask(ctx, access.UserIDFromContext(ctx), req.Message)
	if err != nil {
		access.WriteError(w, "coach ask", err)
		return
	}

	pkg.WriteJSON(w, reply, http.StatusOK)
}

func (h *Handler) HandleGreeting(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Reply{Topic: "greeting", Text: Greeting}, http.StatusOK)
}
