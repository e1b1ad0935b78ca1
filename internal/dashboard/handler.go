package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type dashboardService interface {
	Metrics(ctx context.Context, userID string, date string) (*Metrics, error)
}

type Handler struct {
	service    dashboardService
	defaultLoc *time.Location
	NowFunc    func() time.Time
}

func NewHandler(service dashboardService, defaultLoc *time.Location) *Handler {
	return &Handler{
		service:    service,
		defaultLoc: defaultLoc,
		NowFunc:    time.Now,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	date, err := pkg.RequestDate(r, h.NowFunc(), h.defaultLoc)
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.service.Metrics(ctx, access.UserIDFromContext(ctx), date)
	if err != nil {
		access.WriteError(w, "dashboard", err)
		return
	}

	pkg.WriteJSON(w, m, http.StatusOK)
}
