package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type progressRepo interface {
	Add(ctx context.Context, entry WeightEntry) (*WeightEntry, error)
	Get(ctx context.Context, id int) (*WeightEntry, error)
	List(ctx context.Context, userID string) ([]WeightEntry, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo    progressRepo
	metrics *metrics.Manager
	NowFunc func() time.Time
}

func NewService(repo progressRepo, metrics *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		NowFunc: time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) (_ []WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []WeightEntry{}
	}
	return entries, nil
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return 0, err
	}
	if err := access.Validate(req); err != nil {
		return 0, err
	}

	notes := req.Notes
	if notes != nil && *notes == "" {
		notes = nil
	}

	added, err := s.repo.Add(ctx, WeightEntry{
		UserID:    userID,
		Weight:    req.Weight,
		Date:      req.Date,
		Notes:     notes,
		CreatedAt: s.NowFunc(),
	})
	if err != nil {
		return 0, fmt.Errorf("add weight entry: %w", err)
	}

	s.metrics.RecordCreated(entityName)
	return added.ID, nil
}

func (s *Service) Summary(ctx context.Context, userID string) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(entries)
	return &summary, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return err
	}
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CheckOwner(entry.UserID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.RecordDeleted(entityName)
	return nil
}
