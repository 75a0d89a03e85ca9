package templates

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	templates map[int]*Template
	exercises map[int]*TemplateExercise
	nextID    int
	nextExID  int
	forcedErr error
	// applies to AddExercise only, the other methods keep working
	forcedAddExerciseErr error
}

func NewMockTemplatesRepo() *repoMock {
	return &repoMock{
		templates: make(map[int]*Template),
		exercises: make(map[int]*TemplateExercise),
		nextID:    1,
		nextExID:  1,
	}
}

func (r *repoMock) Add(_ context.Context, template Template) (*Template, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	template.ID = r.nextID
	template.CreatedAt = time.Now()
	r.nextID++
	r.templates[template.ID] = &template
	return &template, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Template, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	template, ok := r.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func (r *repoMock) List(context.Context) ([]Template, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	templates := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		templates = append(templates, *t)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

func (r *repoMock) AddExercise(_ context.Context, exercise TemplateExercise) (*TemplateExercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	if r.forcedAddExerciseErr != nil {
		return nil, r.forcedAddExerciseErr
	}
	exercise.ID = r.nextExID
	exercise.CreatedAt = time.Now()
	r.nextExID++
	r.exercises[exercise.ID] = &exercise
	return &exercise, nil
}

func (r *repoMock) ListExercises(_ context.Context, templateID int) ([]TemplateExercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	exercises := make([]TemplateExercise, 0)
	for _, e := range r.exercises {
		if e.TemplateID == templateID {
			exercises = append(exercises, *e)
		}
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].OrderIndex < exercises[j].OrderIndex
	})
	return exercises, nil
}
