package exercises

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	exercises map[int]*Exercise
	nextID    int
	forcedErr error
}

func NewMockExercisesRepo() *repoMock {
	return &repoMock{
		exercises: make(map[int]*Exercise),
		nextID:    1,
	}
}

func (r *repoMock) Add(_ context.Context, exercise Exercise) (*Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	exercise.ID = r.nextID
	exercise.CreatedAt = time.Now()
	r.nextID++
	r.exercises[exercise.ID] = &exercise
	return &exercise, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *repoMock) ListForSession(_ context.Context, sessionID int) ([]Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	exercises := make([]Exercise, 0)
	for _, e := range r.exercises {
		if e.WorkoutSessionID == sessionID {
			exercises = append(exercises, *e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].ID < exercises[j].ID
	})
	return exercises, nil
}

func (r *repoMock) Update(_ context.Context, params UpdateExerciseParams) (*Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	exercise, ok := r.exercises[params.ID]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	if params.Name != nil {
		exercise.Name = *params.Name
	}
	if params.Category != nil {
		exercise.Category = *params.Category
	}
	if params.Sets != nil {
		exercise.Sets = *params.Sets
	}
	if params.Reps != nil {
		exercise.Reps = *params.Reps
	}
	if params.Weight != nil {
		exercise.Weight = *params.Weight
	}
	return exercise, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.exercises[id]; !ok {
		return ErrExerciseNotFound
	}
	delete(r.exercises, id)
	return nil
}

type sessionsCheckerMock struct {
	existing map[int]bool
}

func (c *sessionsCheckerMock) Exists(_ context.Context, id int) (bool, error) {
	return c.existing[id], nil
}
