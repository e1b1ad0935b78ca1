package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGoalsNotFound = errors.New("user goals not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *UserGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g UserGoals
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, weekly_activity_goal, calorie_goal, weight_goal, updated_at FROM user_goals WHERE user_id = $1;`,
		userID,
	).Scan(&g.ID, &g.UserID, &g.WeeklyActivityGoal, &g.CalorieGoal, &g.WeightGoal, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Upsert creates the owner's goals record or patches the present fields of the existing one.
// The unique user_id constraint keeps it at one record per owner, also under concurrent calls.
// On create, a missing weekly goal is set to weeklyGoalOnCreate.
func (r *Repo) Upsert(
	ctx context.Context,
	userID string,
	patch Patch,
	weeklyGoalOnCreate int,
	updatedAt time.Time,
) (_ *UserGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g UserGoals
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO user_goals
				(user_id, weekly_activity_goal, calorie_goal, weight_goal, updated_at)
				VALUES ($1, COALESCE($2::integer, $3::integer), $4::double precision, $5::double precision, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				weekly_activity_goal = COALESCE($2::integer, user_goals.weekly_activity_goal),
				calorie_goal = COALESCE($4::double precision, user_goals.calorie_goal),
				weight_goal = COALESCE($5::double precision, user_goals.weight_goal),
				updated_at = EXCLUDED.updated_at
			RETURNING id, user_id, weekly_activity_goal, calorie_goal, weight_goal, updated_at;`,
		userID, patch.WeeklyActivityGoal, weeklyGoalOnCreate, patch.CalorieGoal, patch.WeightGoal, updatedAt,
	).Scan(&g.ID, &g.UserID, &g.WeeklyActivityGoal, &g.CalorieGoal, &g.WeightGoal, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert user goals: %w", err)
	}
	return &g, nil
}
