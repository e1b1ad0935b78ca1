package meals

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=meals_test

type mealsRepo interface {
	Add(ctx context.Context, meal Meal) (*Meal, error)
	Get(ctx context.Context, id int) (*Meal, error)
	List(ctx context.Context, userID string) ([]Meal, error)
	DailySummary(ctx context.Context, userID, date string) (*DailySummary, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo    mealsRepo
	metrics *metrics.Manager
	NowFunc func() time.Time
}

func NewService(repo mealsRepo, metrics *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		NowFunc: time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.meals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.meals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return 0, err
	}
	if err := access.Validate(req); err != nil {
		return 0, err
	}

	added, err := s.repo.Add(ctx, Meal{
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		Calories:  req.Calories,
		Protein:   req.Protein,
		Carbs:     req.Carbs,
		Fat:       req.Fat,
		Date:      req.Date,
		CreatedAt: s.NowFunc(),
	})
	if err != nil {
		return 0, fmt.Errorf("add meal: %w", err)
	}

	s.metrics.RecordCreated(entityName)
	log.Debugf("meal %d [%s] added for %s", added.ID, added.Name, userID)
	return added.ID, nil
}

// DailySummary sums the caller's nutrition for one date.
func (s *Service) DailySummary(ctx context.Context, userID, date string) (_ *DailySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.meals.daily-summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	if _, err := pkg.ParseDate(date); err != nil {
		return nil, access.InvalidArgument("%s", err)
	}
	return s.repo.DailySummary(ctx, userID, date)
}

func (s *Service) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.meals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return err
	}
	meal, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CheckOwner(meal.UserID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.RecordDeleted(entityName)
	return nil
}
