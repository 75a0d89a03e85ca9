package sessions

import (
	"fmt"
	"time"
)

// Session is a single workout. EndTime stays null while the workout is
// in progress; setting it is the only state transition a session has.
type Session struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	TemplateID *int       `json:"template_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (s *Session) Active() bool {
	return s.EndTime == nil
}

func (s *Session) String() string {
	state := "active"
	if s.EndTime != nil {
		state = fmt.Sprintf("ended, %s", s.EndTime.Sub(s.StartTime).Round(time.Second))
	}
	return fmt.Sprintf("session %d [%s] (%s)", s.ID, s.Name, state)
}

// UpdateSessionParams carries a sparse patch. Nil fields keep their
// stored values.
type UpdateSessionParams struct {
	ID      int
	Name    *string
	EndTime *time.Time
}
