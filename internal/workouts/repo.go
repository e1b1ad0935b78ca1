package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.Exercises == nil {
		workout.Exercises = []Exercise{}
	}
	exercisesJson, err := json.Marshal(workout.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout
				(user_id, name, date, exercises, completed, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		workout.UserID, workout.Name, workout.Date, exercisesJson, workout.Completed, workout.CreatedAt,
	).Scan(&workout.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, name, date, exercises, completed, created_at FROM workout WHERE id = $1;`,
		id,
	)
	workout, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, access.NotFound(entityName, id)
	}
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// List returns the workouts of one owner, most recently created first.
func (r *Repo) List(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, name, date, exercises, completed, created_at
			FROM workout
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []Workout{}
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

// Update writes only the fields present in the patch.
func (r *Repo) Update(ctx context.Context, id int, patch Patch) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var exercisesJson []byte
	if patch.Exercises != nil {
		exercisesJson, err = json.Marshal(*patch.Exercises)
		if err != nil {
			return fmt.Errorf("marshal exercises: %w", err)
		}
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET
				exercises = COALESCE($1::jsonb, exercises),
				completed = COALESCE($2::boolean, completed)
			WHERE id = $3;`,
		exercisesJson, patch.Completed, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return access.NotFound(entityName, id)
	}
	return nil
}

// Modify runs a read-modify-write of one workout's exercises and completed flag
// while holding its row lock, so concurrent modifications apply one after another.
// An error from modify rolls the transaction back and is returned as is.
func (r *Repo) Modify(ctx context.Context, id int, modify func(workout *Workout) error) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.modify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var modified *Workout
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(
			ctx,
			`SELECT id, user_id, name, date, exercises, completed, created_at
				FROM workout WHERE id = $1
				FOR UPDATE;`,
			id,
		)
		workout, err := scanWorkout(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return access.NotFound(entityName, id)
		}
		if err != nil {
			return err
		}

		if err := modify(workout); err != nil {
			return err
		}

		exercisesJson, err := json.Marshal(workout.Exercises)
		if err != nil {
			return fmt.Errorf("marshal exercises: %w", err)
		}
		if _, err := tx.Exec(
			ctx,
			`UPDATE workout SET exercises = $1, completed = $2 WHERE id = $3;`,
			exercisesJson, workout.Completed, id,
		); err != nil {
			return err
		}

		modified = workout
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modified, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return access.NotFound(entityName, id)
	}
	return nil
}

func scanWorkout(row pgx.Row) (*Workout, error) {
	var workout Workout
	var exercisesJson []byte
	if err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Date,
		&exercisesJson,
		&workout.Completed,
		&workout.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(exercisesJson) > 0 {
		if err := json.Unmarshal(exercisesJson, &workout.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of workout %d: %w", workout.ID, err)
		}
	}
	if workout.Exercises == nil {
		workout.Exercises = []Exercise{}
	}
	return &workout, nil
}
