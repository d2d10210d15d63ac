package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/runtime"
)

var ErrSessionInProgress = fmt.Errorf("a session is already in progress")

// SnapshotPublisher pushes live snapshots to companion displays.
type SnapshotPublisher interface {
	Publish(snap runtime.Snapshot)
	Close()
}

// PublisherFactory builds the per-user publisher when a session goes live.
type PublisherFactory func(userID string) SnapshotPublisher

// HistoryCacheStore holds session-log listings keyed by user.
type HistoryCacheStore interface {
	Get(ctx context.Context, userID string) ([]*domain.SessionLog, error)
	Put(ctx context.Context, userID string, logs []*domain.SessionLog) error
	Invalidate(ctx context.Context, userID string) error
}

// SessionService runs live workout sessions. One runtime per user, restored
// from the persisted state after a crash; every mutation is written back so
// nothing depends on process memory.
type SessionService struct {
	activeRepo  domain.ActiveSessionRepository
	logRepo     domain.SessionLogRepository
	profileRepo domain.ProfileRepository
	schedules   *ScheduleService
	programs    *ProgramService
	history     HistoryCacheStore
	newPub      PublisherFactory

	mu       sync.Mutex
	runtimes map[string]*runtime.Runtime
	pubs     map[string]SnapshotPublisher
}

func NewSessionService(
	activeRepo domain.ActiveSessionRepository,
	logRepo domain.SessionLogRepository,
	profileRepo domain.ProfileRepository,
	schedules *ScheduleService,
	programs *ProgramService,
	history HistoryCacheStore,
	newPub PublisherFactory,
) *SessionService {
	return &SessionService{
		activeRepo:  activeRepo,
		logRepo:     logRepo,
		profileRepo: profileRepo,
		schedules:   schedules,
		programs:    programs,
		history:     history,
		newPub:      newPub,
		runtimes:    make(map[string]*runtime.Runtime),
		pubs:        make(map[string]SnapshotPublisher),
	}
}

// StartSessionRequest starts the session at the program's current position.
// ScheduleHash, when set, is the hash the client rendered from; a mismatch
// against current inputs refuses the start so the client refetches first.
type StartSessionRequest struct {
	ScheduleHash string
}

func (s *SessionService) Start(ctx context.Context, userID string, req StartSessionRequest) (*domain.ActiveSessionState, error) {
	if _, err := s.activeRepo.Get(ctx, userID); err == nil {
		return nil, ErrSessionInProgress
	} else if err != domain.ErrNoActiveSession {
		return nil, err
	}

	cs, err := s.schedules.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.ScheduleHash != "" && req.ScheduleHash != cs.SourceHash {
		return nil, domain.ErrStaleSchedule
	}

	program, err := s.programs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	st, err := runtime.NewSessionState(userID, cs, program.Week, program.Session, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.activeRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.install(userID, st, profile)
	return st, nil
}

// install builds the runtime and wires persistence and publishing hooks.
func (s *SessionService) install(userID string, st *domain.ActiveSessionState, profile *domain.Profile) *runtime.Runtime {
	rt := runtime.New(st, profile)
	pub := s.newPub(userID)

	rt.OnChange = func(state *domain.ActiveSessionState, snap runtime.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.activeRepo.Save(ctx, state)
		pub.Publish(snap)
	}
	rt.OnFinished = func(log *domain.SessionLog) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.sessionEnded(ctx, userID, log)
	}

	s.mu.Lock()
	s.runtimes[userID] = rt
	s.pubs[userID] = pub
	s.mu.Unlock()
	return rt
}

// loadRuntime returns the live runtime, restoring it from the persisted state
// when the process has restarted since the session began.
func (s *SessionService) loadRuntime(ctx context.Context, userID string) (*runtime.Runtime, error) {
	s.mu.Lock()
	rt, ok := s.runtimes[userID]
	s.mu.Unlock()
	if ok && rt.State() != nil {
		return rt, nil
	}

	st, err := s.activeRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.install(userID, st, profile), nil
}

// sessionEnded persists the log, advances the program position, and tears the
// runtime down. Skipped sessions do not advance: nothing was trained.
func (s *SessionService) sessionEnded(ctx context.Context, userID string, log *domain.SessionLog) {
	_ = s.logRepo.Create(ctx, log)
	_ = s.history.Invalidate(ctx, userID)
	_ = s.activeRepo.Delete(ctx, userID)
	if log.Status != domain.SessionSkipped {
		_, _ = s.programs.Advance(ctx, userID)
	}
	s.teardown(userID)
}

func (s *SessionService) CompleteSet(ctx context.Context, userID string) error {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return err
	}
	return rt.CompleteSet()
}

func (s *SessionService) Undo(ctx context.Context, userID string) error {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return err
	}
	return rt.Undo()
}

func (s *SessionService) FinishExercise(ctx context.Context, userID string) error {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return err
	}
	return rt.FinishExercise()
}

func (s *SessionService) Navigate(ctx context.Context, userID string, index int) error {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return err
	}
	return rt.Navigate(index)
}

func (s *SessionService) OverrideWeight(ctx context.Context, userID string, index int, weight float64) error {
	if weight < domain.MinRecordableLb || weight > domain.MaxRecordableLb {
		return fmt.Errorf("%w: weight out of range", domain.ErrValidation)
	}
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return err
	}
	return rt.SetWeightOverride(index, weight)
}

func (s *SessionService) Tick(ctx context.Context, userID string) (runtime.TickResult, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return runtime.TickResult{}, err
	}
	return rt.Tick()
}

// Snapshot is the companion-display view of the live session.
func (s *SessionService) Snapshot(ctx context.Context, userID string) (runtime.Snapshot, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return runtime.Snapshot{}, err
	}
	return rt.Snapshot()
}

// State returns the raw live state for the main client.
func (s *SessionService) State(ctx context.Context, userID string) (*domain.ActiveSessionState, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := rt.State()
	if st == nil {
		return nil, domain.ErrNoActiveSession
	}
	return st, nil
}

// Finish ends the session deliberately and returns the log.
func (s *SessionService) Finish(ctx context.Context, userID string) (*domain.SessionLog, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return nil, err
	}
	log, err := rt.Finish(newULID())
	if err != nil {
		return nil, err
	}
	s.sessionEnded(ctx, userID, log)
	return log, nil
}

// Resume picks a stale session back up.
func (s *SessionService) Resume(ctx context.Context, userID string) (*domain.ActiveSessionState, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := rt.Resume(); err != nil {
		return nil, err
	}
	st := rt.State()
	if err := s.activeRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Discard abandons a stale session. Whatever was completed is still logged,
// but the program position stays put so the session can be redone.
func (s *SessionService) Discard(ctx context.Context, userID string) (*domain.SessionLog, error) {
	rt, err := s.loadRuntime(ctx, userID)
	if err != nil {
		return nil, err
	}
	log, err := rt.Discard(newULID())
	if err != nil {
		return nil, err
	}

	_ = s.logRepo.Create(ctx, log)
	_ = s.history.Invalidate(ctx, userID)
	_ = s.activeRepo.Delete(ctx, userID)
	s.teardown(userID)
	return log, nil
}

// History lists finished session logs, most recent first. Listings are served
// from the short-lived cache; a new log drops the entry.
func (s *SessionService) History(ctx context.Context, userID string) ([]*domain.SessionLog, error) {
	if logs, err := s.history.Get(ctx, userID); err == nil {
		return logs, nil
	}
	logs, err := s.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	_ = s.history.Put(ctx, userID, logs)
	return logs, nil
}

func (s *SessionService) teardown(userID string) {
	s.mu.Lock()
	if pub, ok := s.pubs[userID]; ok {
		pub.Close()
		delete(s.pubs, userID)
	}
	delete(s.runtimes, userID)
	s.mu.Unlock()
}
