package progress

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	List(ctx context.Context, userID string) ([]WeightEntry, error)
	Create(ctx context.Context, userID string, req CreateRequest) (int, error)
	Summary(ctx context.Context, userID string) (*Summary, error)
	Delete(ctx context.Context, userID string, id int) error
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	entries, err := h.service.List(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "list weight entries", err)
		return
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new weight entry, unmarshal json params: %s", err)
		http.Error(w, "error, invalid weight entry", http.StatusBadRequest)
		return
	}

	id, err := h.service.Create(ctx, access.UserIDFromContext(ctx), req)
	if err != nil {
		access.WriteError(w, "create weight entry", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.summary")
	defer span.End()

	summary, err := h.service.Summary(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "progress summary", err)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.delete")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, access.UserIDFromContext(ctx), id); err != nil {
		access.WriteError(w, "delete weight entry", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusOK)
}
