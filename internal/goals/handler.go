package goals

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsService interface {
	Get(ctx context.Context, userID string) (*UserGoals, error)
	SetWeeklyGoal(ctx context.Context, userID string, weeklyGoal int) (*UserGoals, error)
	SetGoals(ctx context.Context, userID string, patch Patch) (*UserGoals, error)
}

// GetResponse carries a null goals field when the user never set any goals.
type GetResponse struct {
	Goals *UserGoals `json:"goals"`
}

type SetWeeklyGoalRequest struct {
	WeeklyActivityGoal *int `json:"weeklyActivityGoal"`
}

type Handler struct {
	service goalsService
}

func NewHandler(service goalsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	g, err := h.service.Get(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "get goals", err)
		return
	}

	pkg.WriteJSON(w, GetResponse{Goals: g}, http.StatusOK)
}

func (h *Handler) HandleSetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.set")
	defer span.End()

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("set goals, unmarshal json params: %s", err)
		http.Error(w, "error, invalid goals", http.StatusBadRequest)
		return
	}

	g, err := h.service.SetGoals(ctx, access.UserIDFromContext(ctx), patch)
	if err != nil {
		access.WriteError(w, "set goals", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: g.ID}, http.StatusOK)
}

func (h *Handler) HandleSetWeeklyGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.set-weekly")
	defer span.End()

	var req SetWeeklyGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WeeklyActivityGoal == nil {
		log.Tracef("set weekly goal, invalid request: %v", err)
		http.Error(w, "error, weeklyActivityGoal missing", http.StatusBadRequest)
		return
	}

	g, err := h.service.SetWeeklyGoal(ctx, access.UserIDFromContext(ctx), *req.WeeklyActivityGoal)
	if err != nil {
		access.WriteError(w, "set weekly goal", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: g.ID}, http.StatusOK)
}
