package workouts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	List(ctx context.Context, userID string) ([]Workout, error)
	Create(ctx context.Context, userID string, req CreateRequest) (int, error)
	Update(ctx context.Context, userID string, id int, patch Patch) error
	ToggleExercise(ctx context.Context, userID string, id int, exerciseID string, completed bool) (*Workout, error)
	Delete(ctx context.Context, userID string, id int) error
}

type ToggleExerciseRequest struct {
	Completed bool `json:"completed"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := h.service.List(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "list workouts", err)
		return
	}

	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "error, invalid workout", http.StatusBadRequest)
		return
	}

	id, err := h.service.Create(ctx, access.UserIDFromContext(ctx), req)
	if err != nil {
		access.WriteError(w, "create workout", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update workout, unmarshal json params: %s", err)
		http.Error(w, "error, invalid workout update", http.StatusBadRequest)
		return
	}

	if err := h.service.Update(ctx, access.UserIDFromContext(ctx), id, patch); err != nil {
		access.WriteError(w, "update workout", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusOK)
}

func (h *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.toggle-exercise")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}
	exerciseID := mux.Vars(r)["exerciseId"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	var req ToggleExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("toggle exercise, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request", http.StatusBadRequest)
		return
	}

	workout, err := h.service.ToggleExercise(ctx, access.UserIDFromContext(ctx), id, exerciseID, req.Completed)
	if err != nil {
		access.WriteError(w, "toggle exercise", err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, access.UserIDFromContext(ctx), id); err != nil {
		access.WriteError(w, "delete workout", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusOK)
}
