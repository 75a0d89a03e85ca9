package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/internal/workout/templates"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestTemplates_CRUD() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	description := gofakeit.Sentence(5)
	var created templates.Template
	statusCode := s.doRequestInto(ctx, "POST", "/templates", templates.AddTemplateRequest{
		Name:        "Push Day",
		Description: &description,
	}, &created)
	require.Equal(t, http.StatusCreated, statusCode)
	require.Positive(t, created.ID)
	assert.Equal(t, "Push Day", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, description, *created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	// read it back
	var fetched templates.Template
	statusCode = s.doRequestInto(ctx, "GET", fmt.Sprintf("/templates/%d", created.ID), nil, &fetched)
	require.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	// shows up in the listing
	var allTemplates []templates.Template
	statusCode = s.doRequestInto(ctx, "GET", "/templates", nil, &allTemplates)
	require.Equal(t, http.StatusOK, statusCode)
	found := false
	for _, tmpl := range allTemplates {
		if tmpl.ID == created.ID {
			found = true
			break
		}
	}
	assert.True(t, found)

	// delete reports success for an existing row
	var deleteResp templates.DeleteTemplateResponse
	statusCode = s.doRequestInto(ctx, "DELETE", fmt.Sprintf("/templates/%d", created.ID), nil, &deleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.True(t, deleteResp.Success)

	// and also for a row that is already gone
	statusCode = s.doRequestInto(ctx, "DELETE", fmt.Sprintf("/templates/%d", created.ID), nil, &deleteResp)
	require.Equal(t, http.StatusOK, statusCode)
	assert.True(t, deleteResp.Success)

	// but the template is gone now
	statusCode, _ = s.doRequest(ctx, "GET", fmt.Sprintf("/templates/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, statusCode)
}

func (s *IntegrationTestSuite) TestTemplates_GetNonExistent() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	statusCode, respBytes := s.doRequest(ctx, "GET", "/templates/999999", nil)
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "template 999999 not found")
}

func (s *IntegrationTestSuite) TestTemplates_Exercises() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var template templates.Template
	statusCode := s.doRequestInto(ctx, "POST", "/templates", templates.AddTemplateRequest{
		Name: "Push Day",
	}, &template)
	require.Equal(t, http.StatusCreated, statusCode)

	var exercise templates.TemplateExercise
	statusCode = s.doRequestInto(ctx, "POST", "/templates/exercises", templates.AddTemplateExerciseRequest{
		TemplateID: template.ID,
		Name:       "Bench Press",
		Category:   workout.CategoryStrength,
		Sets:       3,
		Reps:       10,
		Weight:     135.5,
		OrderIndex: 0,
	}, &exercise)
	require.Equal(t, http.StatusCreated, statusCode)

	// exactly one row, weight survives the numeric round trip intact
	var templateExercises []templates.TemplateExercise
	statusCode = s.doRequestInto(ctx, "GET", fmt.Sprintf("/templates/%d/exercises", template.ID), nil, &templateExercises)
	require.Equal(t, http.StatusOK, statusCode)
	require.Len(t, templateExercises, 1)
	assert.Equal(t, "Bench Press", templateExercises[0].Name)
	assert.InDelta(t, 135.5, templateExercises[0].Weight, 0.001)
	assert.Equal(t, 0, templateExercises[0].OrderIndex)
}

func (s *IntegrationTestSuite) TestTemplates_ExercisesSortedByOrderIndex() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var template templates.Template
	statusCode := s.doRequestInto(ctx, "POST", "/templates", templates.AddTemplateRequest{
		Name: gofakeit.Name(),
	}, &template)
	require.Equal(t, http.StatusCreated, statusCode)

	// inserted out of order on purpose
	for _, orderIndex := range []int{2, 0, 1} {
		statusCode, _ = s.doRequest(ctx, "POST", "/templates/exercises", templates.AddTemplateExerciseRequest{
			TemplateID: template.ID,
			Name:       fmt.Sprintf("exercise-%d", orderIndex),
			Category:   workout.CategoryStrength,
			Sets:       3,
			Reps:       10,
			Weight:     100,
			OrderIndex: orderIndex,
		})
		require.Equal(t, http.StatusCreated, statusCode)
	}

	var templateExercises []templates.TemplateExercise
	statusCode = s.doRequestInto(ctx, "GET", fmt.Sprintf("/templates/%d/exercises", template.ID), nil, &templateExercises)
	require.Equal(t, http.StatusOK, statusCode)
	require.Len(t, templateExercises, 3)
	assert.Equal(t, "exercise-0", templateExercises[0].Name)
	assert.Equal(t, "exercise-1", templateExercises[1].Name)
	assert.Equal(t, "exercise-2", templateExercises[2].Name)
}

func (s *IntegrationTestSuite) TestTemplates_ExerciseForNonExistentTemplate() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	statusCode, respBytes := s.doRequest(ctx, "POST", "/templates/exercises", templates.AddTemplateExerciseRequest{
		TemplateID: 999999,
		Name:       "Bench Press",
		Category:   workout.CategoryStrength,
		Sets:       3,
		Reps:       10,
		Weight:     135.5,
	})
	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Contains(t, string(respBytes), "template 999999 not found")
}
