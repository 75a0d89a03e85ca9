package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/repbase/workout-tracker/internal/telemetry/tracing"
	"github.com/repbase/workout-tracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrTemplateMissing = errors.New("referenced workout template does not exist")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_session (name, template_id)
			VALUES ($1, $2)
		RETURNING id, start_time, created_at;`,
		session.Name, session.TemplateID,
	).Scan(&session.ID, &session.StartTime, &session.CreatedAt)
	if pkg.IsForeignKeyViolationError(err) {
		// the template vanished between the handler pre-check and here
		return nil, ErrTemplateMissing
	}
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))

	return &session, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	session := &Session{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, start_time, end_time, template_id, created_at
			FROM workout_session WHERE id = $1;`,
		id,
	).Scan(
		&session.ID, &session.Name, &session.StartTime,
		&session.EndTime, &session.TemplateID, &session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

// List returns all sessions, most recently created first.
func (r *Repo) List(ctx context.Context) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, start_time, end_time, template_id, created_at
			FROM workout_session
			ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.Name, &s.StartTime,
			&s.EndTime, &s.TemplateID, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Update patches only the non-nil fields of params and returns the
// session as stored afterwards. A session never transitions back to
// active, so there is no way to null out end_time here.
func (r *Repo) Update(ctx context.Context, params UpdateSessionParams) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", params.ID))

	session := &Session{}
	err = r.db.QueryRow(
		ctx,
		`UPDATE workout_session
			SET
				name = COALESCE($2, name),
				end_time = COALESCE($3, end_time)
			WHERE id = $1
		RETURNING id, name, start_time, end_time, template_id, created_at;`,
		params.ID, params.Name, params.EndTime,
	).Scan(
		&session.ID, &session.Name, &session.StartTime,
		&session.EndTime, &session.TemplateID, &session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return session, nil
}

// Delete removes the session together with its logged exercises. Both
// deletes run in one transaction so a failure leaves everything in
// place. ErrSessionNotFound is returned when the session row did not
// exist, deleted child rows alone do not count.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM exercise WHERE workout_session_id = $1;`,
		id,
	); err != nil {
		return fmt.Errorf("delete session exercises: %w", err)
	}

	tag, err := tx.Exec(
		ctx,
		`DELETE FROM workout_session WHERE id = $1;`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrSessionNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Exists is a cheap existence probe used by handlers that reference a
// session from another entity.
func (r *Repo) Exists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_session WHERE id = $1);`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
