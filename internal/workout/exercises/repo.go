package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repbase/workout-tracker/internal/telemetry/tracing"
	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSessionMissing   = errors.New("referenced workout session does not exist")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", exercise.WorkoutSessionID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(name, category, sets, reps, weight, workout_session_id, template_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at;`,
		exercise.Name, exercise.Category, exercise.Sets, exercise.Reps,
		workout.FormatWeight(exercise.Weight),
		exercise.WorkoutSessionID, exercise.TemplateID,
	).Scan(&exercise.ID, &exercise.CreatedAt)
	if pkg.IsForeignKeyViolationError(err) {
		// the session vanished between the handler pre-check and here
		return nil, ErrSessionMissing
	}
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	exercise, err := scanExercise(r.db.QueryRow(
		ctx,
		`SELECT id, name, category, sets, reps, weight::text, workout_session_id, template_id, created_at
			FROM exercise WHERE id = $1;`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	return exercise, nil
}

// ListForSession returns a session's exercises in insertion order. An
// unknown session id yields an empty slice, not an error.
func (r *Repo) ListForSession(ctx context.Context, sessionID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listforsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, sets, reps, weight::text, workout_session_id, template_id, created_at
			FROM exercise
			WHERE workout_session_id = $1
			ORDER BY id;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2exercises(rows)
}

// Update patches only the non-nil fields of params and returns the
// exercise as stored afterwards. The session reference never changes.
func (r *Repo) Update(ctx context.Context, params UpdateExerciseParams) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", params.ID))

	var weight *string
	if params.Weight != nil {
		formatted := workout.FormatWeight(*params.Weight)
		weight = &formatted
	}

	exercise, err := scanExercise(r.db.QueryRow(
		ctx,
		`UPDATE exercise
			SET
				name = COALESCE($2, name),
				category = COALESCE($3, category),
				sets = COALESCE($4, sets),
				reps = COALESCE($5, reps),
				weight = COALESCE($6, weight)
			WHERE id = $1
		RETURNING id, name, category, sets, reps, weight::text, workout_session_id, template_id, created_at;`,
		params.ID, params.Name, params.Category, params.Sets, params.Reps, weight,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}

	return exercise, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func scanExercise(row pgx.Row) (*Exercise, error) {
	var e Exercise
	var weight string
	var createdAt time.Time
	if err := row.Scan(
		&e.ID, &e.Name, &e.Category, &e.Sets, &e.Reps,
		&weight, &e.WorkoutSessionID, &e.TemplateID, &createdAt,
	); err != nil {
		return nil, err
	}

	parsedWeight, err := workout.ParseWeight(weight)
	if err != nil {
		return nil, fmt.Errorf("exercise %d: %w", e.ID, err)
	}
	e.Weight = parsedWeight
	e.CreatedAt = createdAt

	return &e, nil
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
