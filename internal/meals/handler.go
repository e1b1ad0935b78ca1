package meals

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=meals_test

type mealsService interface {
	List(ctx context.Context, userID string) ([]Meal, error)
	Create(ctx context.Context, userID string, req CreateRequest) (int, error)
	DailySummary(ctx context.Context, userID, date string) (*DailySummary, error)
	Delete(ctx context.Context, userID string, id int) error
}

type Handler struct {
	service    mealsService
	defaultLoc *time.Location
	NowFunc    func() time.Time
}

func NewHandler(service mealsService, defaultLoc *time.Location) *Handler {
	return &Handler{
		service:    service,
		defaultLoc: defaultLoc,
		NowFunc:    time.Now,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.list")
	defer span.End()

	meals, err := h.service.List(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "list meals", err)
		return
	}

	pkg.WriteJSON(w, meals, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new meal, unmarshal json params: %s", err)
		http.Error(w, "error, invalid meal", http.StatusBadRequest)
		return
	}

	id, err := h.service.Create(ctx, access.UserIDFromContext(ctx), req)
	if err != nil {
		access.WriteError(w, "create meal", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.summary")
	defer span.End()

	date, err := pkg.RequestDate(r, h.NowFunc(), h.defaultLoc)
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.DailySummary(ctx, access.UserIDFromContext(ctx), date)
	if err != nil {
		access.WriteError(w, "meals daily summary", err)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.delete")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, access.UserIDFromContext(ctx), id); err != nil {
		access.WriteError(w, "delete meal", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusOK)
}
