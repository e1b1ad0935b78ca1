package dashboard

import (
	"context"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/workouts"
	"github.com/2beens/fittrack/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

type workoutsLister interface {
	List(ctx context.Context, userID string) ([]workouts.Workout, error)
}

type mealsLister interface {
	List(ctx context.Context, userID string) ([]meals.Meal, error)
}

type goalsGetter interface {
	Get(ctx context.Context, userID string) (*goals.UserGoals, error)
}

type Service struct {
	workouts workoutsLister
	meals    mealsLister
	goals    goalsGetter
}

func NewService(workouts workoutsLister, meals mealsLister, goals goalsGetter) *Service {
	return &Service{
		workouts: workouts,
		meals:    meals,
		goals:    goals,
	}
}

// Metrics fetches the caller's history and computes the dashboard for the given local date.
// Nothing is computed when any of the fetches fails.
func (s *Service) Metrics(ctx context.Context, userID string, date string) (_ *Metrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.metrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}

	today, err := time.Parse(pkg.DateLayout, date)
	if err != nil {
		return nil, access.InvalidArgument("invalid date [%s], expected YYYY-MM-DD", date)
	}

	userWorkouts, err := s.workouts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	userMeals, err := s.meals.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	userGoals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := Compute(today, userWorkouts, userMeals, goals.WeeklyGoalOrDefault(userGoals))
	span.SetAttributes(attribute.Int("streak", m.Streak))
	return &m, nil
}
