package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

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

func (r *Repo) Add(ctx context.Context, note *Note) (_ *Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notes.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if note.Content == "" || note.CreatedAt.IsZero() {
		return nil, errors.New("note content or timestamp empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO note (user_id, title, content, summary, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		note.UserID, note.Title, note.Content, note.Summary, note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("note.id", id))
	note.ID = id
	return note, nil
}

func (r *Repo) Get(ctx context.Context, noteID int) (_ *Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notes.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", noteID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, title, content, summary, created_at FROM note WHERE id = $1;`,
		noteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, access.NotFound(entityName, noteID)
	}

	var note Note
	if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Summary, &note.CreatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notes.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM note WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return access.NotFound(entityName, id)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notes.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, title, content, summary, created_at
			FROM note
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Summary, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}
