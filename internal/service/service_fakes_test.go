package service

import (
	"context"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// In-memory repositories for service tests. Single user, no concurrency.

type fakeMaxRepo struct {
	tests []*domain.MaxTest
}

func (r *fakeMaxRepo) Create(ctx context.Context, test *domain.MaxTest) error {
	r.tests = append(r.tests, test)
	return nil
}

func (r *fakeMaxRepo) ListByUser(ctx context.Context, userID string) ([]*domain.MaxTest, error) {
	var out []*domain.MaxTest
	for _, t := range r.tests {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeMaxRepo) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.MaxTest, error) {
	var out []*domain.MaxTest
	for _, t := range r.tests {
		if t.UserID == userID && t.UpdatedAt.After(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeMaxRepo) UpsertByID(ctx context.Context, test *domain.MaxTest) error {
	for i, t := range r.tests {
		if t.ID == test.ID {
			r.tests[i] = test
			return nil
		}
	}
	r.tests = append(r.tests, test)
	return nil
}

func (r *fakeMaxRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	kept := r.tests[:0]
	for _, t := range r.tests {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	r.tests = kept
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return domain.DefaultProfile(userID), nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

type fakeProgramRepo struct {
	programs map[string]*domain.ActiveProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: map[string]*domain.ActiveProgram{}}
}

func (r *fakeProgramRepo) Get(ctx context.Context, userID string) (*domain.ActiveProgram, error) {
	if p, ok := r.programs[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProgramNotFound
}

func (r *fakeProgramRepo) Upsert(ctx context.Context, program *domain.ActiveProgram) error {
	r.programs[program.UserID] = program
	return nil
}

func (r *fakeProgramRepo) Delete(ctx context.Context, userID string) error {
	delete(r.programs, userID)
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateUserCache(ctx context.Context, userID string) error {
	f.calls++
	return nil
}

type fakeLogRepo struct {
	logs  []*domain.SessionLog
	lists int
}

func (r *fakeLogRepo) Create(ctx context.Context, log *domain.SessionLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeLogRepo) ListByUser(ctx context.Context, userID string) ([]*domain.SessionLog, error) {
	r.lists++
	var out []*domain.SessionLog
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.SessionLog, error) {
	var out []*domain.SessionLog
	for _, l := range r.logs {
		if l.UserID == userID && l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) UpsertByID(ctx context.Context, log *domain.SessionLog) error {
	for i, l := range r.logs {
		if l.ID == log.ID {
			r.logs[i] = log
			return nil
		}
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeLogRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

type fakeActiveRepo struct {
	states map[string]*domain.ActiveSessionState
}

func newFakeActiveRepo() *fakeActiveRepo {
	return &fakeActiveRepo{states: map[string]*domain.ActiveSessionState{}}
}

func (r *fakeActiveRepo) Get(ctx context.Context, userID string) (*domain.ActiveSessionState, error) {
	if st, ok := r.states[userID]; ok {
		return st, nil
	}
	return nil, domain.ErrNoActiveSession
}

func (r *fakeActiveRepo) Save(ctx context.Context, state *domain.ActiveSessionState) error {
	r.states[state.UserID] = state
	return nil
}

func (r *fakeActiveRepo) Delete(ctx context.Context, userID string) error {
	delete(r.states, userID)
	return nil
}
