package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/repbase/workout-tracker/internal/misc"
	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/internal/workout/exercises"
	"github.com/repbase/workout-tracker/internal/workout/sessions"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) createTestSession(ctx context.Context) sessions.Session {
	s.T().Helper()
	var session sessions.Session
	statusCode := s.doRequestInto(ctx, "POST", "/sessions", sessions.AddSessionRequest{
		Name: gofakeit.Name(),
	}, &session)
	require.Equal(s.T(), http.StatusCreated, statusCode)
	return session
}

func (s *IntegrationTestSuite) TestExercises_PartialUpdate() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	session := s.createTestSession(ctx)

	var exercise exercises.Exercise
	statusCode := s.doRequestInto(ctx, "POST", "/exercises", exercises.AddExerciseRequest{
		Name:             "Squat",
		Category:         workout.CategoryStrength,
		Sets:             4,
		Reps:             8,
		Weight:           225.0,
		WorkoutSessionID: session.ID,
	}, &exercise)
	require.Equal(t, http.StatusCreated, statusCode)

	// patch the weight only
	newWeight := 235.0
	var updated exercises.Exercise
	statusCode = s.doRequestInto(ctx, "PUT", fmt.Sprintf("/exercises/%d", exercise.ID), exercises.UpdateExerciseRequest{
		Weight: &newWeight,
	}, &updated)
	require.Equal(t, http.StatusOK, statusCode)
	assert.InDelta(t, 235.0, updated.Weight, 0.001)
	// everything else keeps its pre-update value
	assert.Equal(t, exercise.Name, updated.Name)
	assert.Equal(t, exercise.Category, updated.Category)
	assert.Equal(t, exercise.Sets, updated.Sets)
	assert.Equal(t, exercise.Reps, updated.Reps)
	assert.Equal(t, exercise.WorkoutSessionID, updated.WorkoutSessionID)
}

func (s *IntegrationTestSuite) TestExercises_UpdateNonExistent() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	newName := "whatever"
	statusCode, respBytes := s.doRequest(ctx, "PUT", "/exercises/999999", exercises.UpdateExerciseRequest{
		Name: &newName,
	})
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "exercise 999999 not found")
}

func (s *IntegrationTestSuite) TestExercises_CreateForNonExistentSession() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	statusCode, respBytes := s.doRequest(ctx, "POST", "/exercises", exercises.AddExerciseRequest{
		Name:             "Squat",
		Category:         workout.CategoryStrength,
		Sets:             4,
		Reps:             8,
		Weight:           225.0,
		WorkoutSessionID: 999999,
	})
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "session 999999 not found")
}

func (s *IntegrationTestSuite) TestExercises_InvalidCategory() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	session := s.createTestSession(ctx)

	statusCode, respBytes := s.doRequest(ctx, "POST", "/exercises", exercises.AddExerciseRequest{
		Name:             "Interpretive Dance",
		Category:         "Dance",
		Sets:             1,
		Reps:             1,
		Weight:           0,
		WorkoutSessionID: session.ID,
	})
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Contains(t, string(respBytes), "unknown category")
}

// exercise delete always reports success, session delete does not,
// that asymmetry is deliberate
func (s *IntegrationTestSuite) TestExercises_DeleteAlwaysSucceeds() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var deleteResp exercises.DeleteExerciseResponse
	statusCode := s.doRequestInto(ctx, "DELETE", "/exercises/999999", nil, &deleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.True(t, deleteResp.Success)

	var sessionDeleteResp sessions.DeleteSessionResponse
	statusCode = s.doRequestInto(ctx, "DELETE", "/sessions/999999", nil, &sessionDeleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.False(t, sessionDeleteResp.Success)
}

func (s *IntegrationTestSuite) TestMisc_Healthcheck() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var resp misc.HealthcheckResponse
	statusCode := s.doRequestInto(ctx, "GET", "/healthcheck", nil, &resp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}
