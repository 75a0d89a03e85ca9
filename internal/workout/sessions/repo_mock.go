package sessions

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	sessions  map[int]*Session
	nextID    int
	forcedErr error
}

func NewMockSessionsRepo() *repoMock {
	return &repoMock{
		sessions: make(map[int]*Session),
		nextID:   1,
	}
}

func (r *repoMock) Add(_ context.Context, session Session) (*Session, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	session.ID = r.nextID
	session.StartTime = time.Now()
	session.CreatedAt = session.StartTime
	r.nextID++
	r.sessions[session.ID] = &session
	return &session, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Session, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *repoMock) List(context.Context) ([]Session, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (r *repoMock) Update(_ context.Context, params UpdateSessionParams) (*Session, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	session, ok := r.sessions[params.ID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if params.Name != nil {
		session.Name = *params.Name
	}
	if params.EndTime != nil {
		session.EndTime = params.EndTime
	}
	return session, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

type templatesCheckerMock struct {
	existing map[int]bool
}

func (c *templatesCheckerMock) Exists(_ context.Context, id int) (bool, error) {
	return c.existing[id], nil
}
