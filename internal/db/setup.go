package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaSQL holds the DDL for the four workout tracking tables. One
// foreign key per reference column, no extra indexes beyond the
// primary keys.
const SchemaSQL = `
CREATE TABLE public.workout_template
(
    id          SERIAL PRIMARY KEY,
    name        VARCHAR NOT NULL,
    description VARCHAR,
    created_at  TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);

ALTER TABLE public.workout_template OWNER TO postgres;

CREATE TABLE public.template_exercise
(
    id          SERIAL PRIMARY KEY,
    template_id INTEGER      NOT NULL REFERENCES public.workout_template (id),
    name        VARCHAR      NOT NULL,
    category    VARCHAR      NOT NULL,
    sets        INTEGER      NOT NULL,
    reps        INTEGER      NOT NULL,
    weight      NUMERIC(8,2) NOT NULL,
    order_index INTEGER      NOT NULL,
    created_at  TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);

ALTER TABLE public.template_exercise OWNER TO postgres;

CREATE TABLE public.workout_session
(
    id          SERIAL PRIMARY KEY,
    name        VARCHAR NOT NULL,
    start_time  TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
    end_time    TIMESTAMP WITHOUT TIME ZONE,
    template_id INTEGER REFERENCES public.workout_template (id),
    created_at  TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);

ALTER TABLE public.workout_session OWNER TO postgres;

CREATE TABLE public.exercise
(
    id                 SERIAL PRIMARY KEY,
    name               VARCHAR      NOT NULL,
    category           VARCHAR      NOT NULL,
    sets               INTEGER      NOT NULL,
    reps               INTEGER      NOT NULL,
    weight             NUMERIC(8,2) NOT NULL,
    workout_session_id INTEGER      NOT NULL REFERENCES public.workout_session (id),
    template_id        INTEGER REFERENCES public.workout_template (id),
    created_at         TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);

ALTER TABLE public.exercise OWNER TO postgres;
`

// Setup creates the workout tracking schema. Meant for fresh databases,
// used by cmd/dbsetup and the integration test suite.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("create workout tracking schema: %w", err)
	}
	return nil
}
