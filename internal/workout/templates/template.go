package templates

import (
	"time"

	"github.com/repbase/workout-tracker/internal/workout"
)

// Template is a reusable named list of planned exercises.
type Template struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateExercise is one planned exercise inside a template, ordered
// by OrderIndex. Duplicate order indexes and gaps are both legal.
type TemplateExercise struct {
	ID         int              `json:"id"`
	TemplateID int              `json:"template_id"`
	Name       string           `json:"name"`
	Category   workout.Category `json:"category"`
	Sets       int              `json:"sets"`
	Reps       int              `json:"reps"`
	Weight     float64          `json:"weight"`
	OrderIndex int              `json:"order_index"`
	CreatedAt  time.Time        `json:"created_at"`
}
