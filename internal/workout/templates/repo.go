package templates

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

var ErrTemplateNotFound = errors.New("workout template not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, template Template) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_template (name, description)
			VALUES ($1, $2)
		RETURNING id, created_at;`,
		template.Name, template.Description,
	).Scan(&template.ID, &template.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	span.SetAttributes(attribute.Int("template.id", template.ID))

	return &template, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	template := &Template{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, description, created_at FROM workout_template WHERE id = $1;`,
		id,
	).Scan(&template.ID, &template.Name, &template.Description, &template.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (r *Repo) List(ctx context.Context) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, created_at FROM workout_template ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]Template, 0)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_template WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Exists is a cheap existence probe used by handlers that reference a
// template from another entity.
func (r *Repo) Exists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_template WHERE id = $1);`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repo) AddExercise(ctx context.Context, exercise TemplateExercise) (_ *TemplateExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", exercise.TemplateID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO template_exercise
				(template_id, name, category, sets, reps, weight, order_index)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at;`,
		exercise.TemplateID, exercise.Name, exercise.Category,
		exercise.Sets, exercise.Reps, workout.FormatWeight(exercise.Weight),
		exercise.OrderIndex,
	).Scan(&exercise.ID, &exercise.CreatedAt)
	if err != nil {
		// template removed between the caller's existence check and the insert
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("insert template exercise: %w", err)
	}

	return &exercise, nil
}

// ListExercises returns all planned exercises of a template, ordered by
// order_index ascending. An unknown template id yields an empty slice,
// not an error.
func (r *Repo) ListExercises(ctx context.Context, templateID int) (_ []TemplateExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.listexercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, template_id, name, category, sets, reps, weight::text, order_index, created_at
			FROM template_exercise
			WHERE template_id = $1
			ORDER BY order_index ASC;`,
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2templateExercises(rows)
}

func rows2templateExercises(rows pgx.Rows) ([]TemplateExercise, error) {
	exercises := make([]TemplateExercise, 0)
	for rows.Next() {
		var e TemplateExercise
		var weight string
		var createdAt time.Time
		if err := rows.Scan(
			&e.ID, &e.TemplateID, &e.Name, &e.Category,
			&e.Sets, &e.Reps, &weight, &e.OrderIndex, &createdAt,
		); err != nil {
			return nil, err
		}

		parsedWeight, err := workout.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("template exercise %d: %w", e.ID, err)
		}
		e.Weight = parsedWeight
		e.CreatedAt = createdAt

		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}
