package notes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=notes_test

type notesService interface {
	List(ctx context.Context, userID string) ([]Note, error)
	Create(ctx context.Context, userID string, req CreateRequest) (int, error)
	Delete(ctx context.Context, userID string, id int) error
}

type Handler struct {
	service notesService
}

func NewHandler(service notesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.add")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add new note failed, unmarshal json: %s", err)
		http.Error(w, "error, invalid note", http.StatusBadRequest)
		return
	}

	id, err := handler.service.Create(ctx, access.UserIDFromContext(ctx), req)
	if err != nil {
		access.WriteError(w, "add note", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.delete")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, access.UserIDFromContext(ctx), id); err != nil {
		access.WriteError(w, "delete note", err)
		return
	}

	pkg.WriteJSON(w, pkg.IDResponse{ID: id}, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.list")
	defer span.End()

	notes, err := handler.service.List(ctx, access.UserIDFromContext(ctx))
	if err != nil {
		access.WriteError(w, "list notes", err)
		return
	}

	if len(notes) == 0 {
		notes = []Note{}
	}

	pkg.WriteJSON(w, notes, http.StatusOK)
}
