package notes

import (
	"context"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=notes_test

type notesRepo interface {
	Add(ctx context.Context, note *Note) (*Note, error)
	Get(ctx context.Context, id int) (*Note, error)
	List(ctx context.Context, userID string) ([]Note, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo    notesRepo
	metrics *metrics.Manager
	NowFunc func() time.Time
}

func NewService(repo notesRepo, metrics *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		NowFunc: time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) (_ []Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notes.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notes.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return 0, err
	}
	if err := access.Validate(req); err != nil {
		return 0, err
	}

	added, err := s.repo.Add(ctx, &Note{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: s.NowFunc(),
	})
	if err != nil {
		return 0, err
	}

	s.metrics.RecordCreated(entityName)
	log.Debugf("new note added: [%s] [%s]: %d", added.Title, added.CreatedAt, added.ID)
	return added.ID, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notes.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return err
	}
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CheckOwner(note.UserID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.RecordDeleted(entityName)
	return nil
}
