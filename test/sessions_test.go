package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/internal/workout/exercises"
	"github.com/repbase/workout-tracker/internal/workout/sessions"
	"github.com/repbase/workout-tracker/internal/workout/templates"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSessions_Lifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	// a fresh session is active
	var session sessions.Session
	statusCode := s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name: "Morning",
	}, &session)
	require.Equal(t, http.StatusCreated, statusCode)
	require.Positive(t, session.ID)
	assert.Nil(t, session.EndTime)
	assert.False(t, session.StartTime.IsZero())

	// log an exercise against it
	var exercise exercises.Exercise
	statusCode = s.doRequestInto(ctx, "POST", "/exercises", exercises.AddExerciseRequest{
		Name:             "Squat",
		Category:         workout.CategoryStrength,
		Sets:             4,
		Reps:             8,
		Weight:           225.0,
		WorkoutSessionID: session.ID,
	}, &exercise)
	require.Equal(t, http.StatusCreated, statusCode)

	var sessionExercises []exercises.Exercise
	statusCode = s.doRequestInto(ctx, "GET", fmt.Sprintf("/sessions/%d/exercises", session.ID), nil, &sessionExercises)
	require.Equal(t, http.StatusOK, statusCode)
	require.Len(t, sessionExercises, 1)
	assert.Equal(t, "Squat", sessionExercises[0].Name)
	assert.InDelta(t, 225.0, sessionExercises[0].Weight, 0.001)

	// finish the session
	endTime := time.Now().UTC()
	var updated sessions.Session
	statusCode = s.doRequestInto(ctx, "PUT", fmt.Sprintf("/sessions/%d", session.ID), sessions.UpdateSessionRequest{
		EndTime: &endTime,
	}, &updated)
	require.Equal(t, http.StatusOK, statusCode)
	require.NotNil(t, updated.EndTime)
	assert.False(t, updated.Active())
	// name untouched by the patch
	assert.Equal(t, "Morning", updated.Name)

	// the listing no longer shows it active either
	var allSessions []sessions.Session
	statusCode = s.doRequestInto(ctx, "GET", "/sessions", nil, &allSessions)
	require.Equal(t, http.StatusOK, statusCode)
	for _, listed := range allSessions {
		if listed.ID == session.ID {
			assert.False(t, listed.Active())
		}
	}
}

func (s *IntegrationTestSuite) TestSessions_FromTemplate() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var template templates.Template
	statusCode := s.doRequestInto(ctx, "POST", "/templates", templates.AddTemplateRequest{
		Name: gofakeit.Name(),
	}, &template)
	require.Equal(t, http.StatusCreated, statusCode)

	var session sessions.Session
	statusCode = s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name:       "Push Day",
		TemplateID: &template.ID,
	}, &session)
	require.Equal(t, http.StatusCreated, statusCode)
	require.NotNil(t, session.TemplateID)
	assert.Equal(t, template.ID, *session.TemplateID)
}

func (s *IntegrationTestSuite) TestSessions_CreateWithNonExistentTemplate() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	templateID := 999999
	statusCode, respBytes := s.doRequest(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name:       "Push Day",
		TemplateID: &templateID,
	})
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "template 999999 not found")
}

func (s *IntegrationTestSuite) TestSessions_GetNonExistent() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	statusCode, respBytes := s.doRequest(ctx, "GET", "/sessions/999999", nil)
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "session 999999 not found")
}

func (s *IntegrationTestSuite) TestSessions_ListMostRecentFirst() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var first, second sessions.Session
	statusCode := s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name: gofakeit.Name(),
	}, &first)
	require.Equal(t, http.StatusCreated, statusCode)
	statusCode = s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name: gofakeit.Name(),
	}, &second)
	require.Equal(t, http.StatusCreated, statusCode)

	var allSessions []sessions.Session
	statusCode = s.doRequestInto(ctx, "GET", "/sessions", nil, &allSessions)
	require.Equal(t, http.StatusOK, statusCode)

	firstIdx, secondIdx := -1, -1
	for i, listed := range allSessions {
		switch listed.ID {
		case first.ID:
			firstIdx = i
		case second.ID:
			secondIdx = i
		}
	}
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, secondIdx, firstIdx)
}

// session delete cascades to the logged exercises, and reports success
// only when the session row existed
func (s *IntegrationTestSuite) TestSessions_DeleteCascades() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var session sessions.Session
	statusCode := s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name: gofakeit.Name(),
	}, &session)
	require.Equal(t, http.StatusCreated, statusCode)

	statusCode, _ = s.doRequest(ctx, "POST", "/exercises", exercises.AddExerciseRequest{
		Name:             "Deadlift",
		Category:         workout.CategoryStrength,
		Sets:             3,
		Reps:             5,
		Weight:           315.0,
		WorkoutSessionID: session.ID,
	})
	require.Equal(t, http.StatusCreated, statusCode)

	var deleteResp sessions.DeleteSessionResponse
	statusCode = s.doRequestInto(ctx, "DELETE", fmt.Sprintf("/sessions/%d", session.ID), nil, &deleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.True(t, deleteResp.Success)

	// the logged exercise went away with it
	var remaining int
	require.NoError(t, s.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM exercise WHERE workout_session_id = $1`,
		session.ID,
	).Scan(&remaining))
	assert.Zero(t, remaining)

	// second delete of the same id reports failure
	statusCode = s.doRequestInto(ctx, "DELETE", fmt.Sprintf("/sessions/%d", session.ID), nil, &deleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.False(t, deleteResp.Success)
}
