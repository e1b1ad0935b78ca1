package meals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const mealColumns = `id, user_id, name, type, calories, protein, carbs, fat, date, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, meal Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO meal
				(user_id, name, type, calories, protein, carbs, fat, date, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		meal.UserID, meal.Name, meal.Type, meal.Calories, meal.Protein, meal.Carbs, meal.Fat, meal.Date, meal.CreatedAt,
	).Scan(&meal.ID)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}

	span.SetAttributes(attribute.Int("meal.id", meal.ID))
	return &meal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	meal, err := scanMeal(r.db.QueryRow(ctx, `SELECT `+mealColumns+` FROM meal WHERE id = $1;`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, access.NotFound(entityName, id)
	}
	if err != nil {
		return nil, err
	}
	return meal, nil
}

// List returns the meals of one owner, most recently created first.
func (r *Repo) List(ctx context.Context, userID string) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+mealColumns+` FROM meal WHERE user_id = $1 ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []Meal{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *meal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("meals.count", len(meals)))
	return meals, nil
}

func (r *Repo) DailySummary(ctx context.Context, userID, date string) (_ *DailySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.daily-summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	summary := &DailySummary{Date: date}
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				COUNT(*),
				COALESCE(SUM(calories), 0),
				COALESCE(SUM(protein), 0),
				COALESCE(SUM(carbs), 0),
				COALESCE(SUM(fat), 0)
			FROM meal
			WHERE user_id = $1 AND date = $2;`,
		userID, date,
	).Scan(&summary.MealCount, &summary.Calories, &summary.Protein, &summary.Carbs, &summary.Fat)
	if err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}
	return summary, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM meal WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return access.NotFound(entityName, id)
	}
	return nil
}

func scanMeal(row pgx.Row) (*Meal, error) {
	var meal Meal
	if err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&meal.Name,
		&meal.Type,
		&meal.Calories,
		&meal.Protein,
		&meal.Carbs,
		&meal.Fat,
		&meal.Date,
		&meal.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &meal, nil
}
