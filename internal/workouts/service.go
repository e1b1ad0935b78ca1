package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	List(ctx context.Context, userID string) ([]Workout, error)
	Update(ctx context.Context, id int, patch Patch) error
	Modify(ctx context.Context, id int, modify func(workout *Workout) error) (*Workout, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo    workoutsRepo
	metrics *metrics.Manager
	NowFunc func() time.Time
}

func NewService(repo workoutsRepo, metrics *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		NowFunc: time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}

// Create stores a new workout owned by the caller and returns its id.
// Exercises sent without a local id get one assigned.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return 0, err
	}
	if err := access.Validate(req); err != nil {
		return 0, err
	}

	exercises := withExerciseIDs(req.Exercises)
	if err := checkUniqueExerciseIDs(exercises); err != nil {
		return 0, err
	}

	added, err := s.repo.Add(ctx, Workout{
		UserID:    userID,
		Name:      req.Name,
		Date:      req.Date,
		Exercises: exercises,
		Completed: req.Completed,
		CreatedAt: s.NowFunc(),
	})
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}

	s.metrics.RecordCreated(entityName)
	span.SetAttributes(attribute.Int("workout.id", added.ID))
	log.Debugf("workout %d [%s] added for %s", added.ID, added.Name, userID)

	return added.ID, nil
}

// Update patches the exercises and/or the completed flag of a caller's workout.
func (s *Service) Update(ctx context.Context, userID string, id int, patch Patch) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if _, err := s.ownedWorkout(ctx, userID, id); err != nil {
		return err
	}

	if patch.Exercises != nil {
		if err := access.Validate(struct {
			Exercises []Exercise `validate:"dive"`
		}{*patch.Exercises}); err != nil {
			return err
		}
		exercises := withExerciseIDs(*patch.Exercises)
		if err := checkUniqueExerciseIDs(exercises); err != nil {
			return err
		}
		patch.Exercises = &exercises
	}
	if patch.IsEmpty() {
		return nil
	}

	return s.repo.Update(ctx, id, patch)
}

// ToggleExercise sets the completed flag of one exercise.
// The workout counts as completed exactly when all of its exercises are.
func (s *Service) ToggleExercise(ctx context.Context, userID string, id int, exerciseID string, completed bool) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.toggle-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id), attribute.String("exercise.id", exerciseID))

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}

	return s.repo.Modify(ctx, id, func(workout *Workout) error {
		if err := access.CheckOwner(workout.UserID, userID); err != nil {
			return err
		}

		found := false
		for i := range workout.Exercises {
			if workout.Exercises[i].ID == exerciseID {
				workout.Exercises[i].Completed = completed
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("exercise [%s] of workout %d: %w", exerciseID, id, access.ErrNotFound)
		}

		workout.Completed = workout.AllExercisesCompleted()
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if _, err := s.ownedWorkout(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.RecordDeleted(entityName)
	return nil
}

func (s *Service) ownedWorkout(ctx context.Context, userID string, id int) (*Workout, error) {
	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	workout, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckOwner(workout.UserID, userID); err != nil {
		return nil, err
	}
	return workout, nil
}

func withExerciseIDs(exercises []Exercise) []Exercise {
	withIDs := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		withIDs = append(withIDs, e)
	}
	return withIDs
}

func checkUniqueExerciseIDs(exercises []Exercise) error {
	seen := make(map[string]bool, len(exercises))
	for _, e := range exercises {
		if seen[e.ID] {
			return access.InvalidArgument("duplicate exercise id [%s]", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}
