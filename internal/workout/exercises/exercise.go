package exercises

import (
	"time"

	"github.com/repbase/workout-tracker/internal/workout"
)

// Exercise is a logged exercise within a workout session. TemplateID is
// set when the exercise was seeded from a workout template, null when
// logged ad hoc.
type Exercise struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Category         workout.Category `json:"category"`
	Sets             int              `json:"sets"`
	Reps             int              `json:"reps"`
	Weight           float64          `json:"weight"`
	WorkoutSessionID int              `json:"workout_session_id"`
	TemplateID       *int             `json:"template_id"`
	CreatedAt        time.Time        `json:"created_at"`
}

// UpdateExerciseParams carries a sparse patch. Nil fields keep their
// stored values. The session reference is immutable, an exercise never
// moves between sessions.
type UpdateExerciseParams struct {
	ID       int
	Name     *string
	Category *workout.Category
	Sets     *int
	Reps     *int
	Weight   *float64
}
