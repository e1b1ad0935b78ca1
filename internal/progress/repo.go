package progress

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

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry WeightEntry) (_ *WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO weight_entry (user_id, weight, date, notes, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		entry.UserID, entry.Weight, entry.Date, entry.Notes, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("insert weight entry: %w", err)
	}

	span.SetAttributes(attribute.Int("weight_entry.id", entry.ID))
	return &entry, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var entry WeightEntry
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, weight, date, notes, created_at FROM weight_entry WHERE id = $1;`,
		id,
	).Scan(&entry.ID, &entry.UserID, &entry.Weight, &entry.Date, &entry.Notes, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, access.NotFound(entityName, id)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the weight entries of one owner, most recently created first.
func (r *Repo) List(ctx context.Context, userID string) (_ []WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, weight, date, notes, created_at
			FROM weight_entry
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WeightEntry, error) {
		var entry WeightEntry
		err := row.Scan(&entry.ID, &entry.UserID, &entry.Weight, &entry.Date, &entry.Notes, &entry.CreatedAt)
		return entry, err
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	return entries, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM weight_entry WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return access.NotFound(entityName, id)
	}
	return nil
}
