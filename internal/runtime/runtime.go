package runtime

import (
	"errors"
	"sync"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/plates"
)

var (
	ErrSessionStale     = errors.New("active session is stale, resume or discard it")
	ErrExerciseComplete = errors.New("all sets of the current exercise are complete")
	ErrNothingToUndo    = errors.New("no set is undoable")
	ErrMinSetsNotMet    = errors.New("minimum sets not reached for early finish")
	ErrNotEarlyFinish   = errors.New("exercise has a fixed set count")
	ErrExerciseIndex    = errors.New("exercise index out of range")
	ErrSessionNotStale  = errors.New("session is not stale")
)

const (
	// UndoWindow is the single-shot window after completing a set.
	UndoWindow = 10 * time.Second
	// AutoAdvanceDelay separates the last set of an exercise from auto-advance,
	// leaving room for the undo to land first.
	AutoAdvanceDelay = 2 * time.Second
	// StaleAfter marks an untouched active session as crashed or abandoned.
	StaleAfter = 24 * time.Hour
	// TickInterval is how often drivers should call Tick during rest.
	TickInterval = 250 * time.Millisecond
)

// Rest fallbacks by working intensity, used when the profile sets no default.
const (
	restLongSeconds   = 180 // >= 90% of working max
	restMediumSeconds = 120 // >= 70%
	restShortSeconds  = 90
)

// restMilestones are the remaining-seconds marks that fire once per rest.
var restMilestones = [...]int{30, 10, 3}

// Clock supplies the current time. Injectable for tests.
type Clock func() time.Time

// Scheduler runs f after d and returns a cancel func. The default wraps
// time.AfterFunc; tests substitute a manual one.
type Scheduler func(d time.Duration, f func()) (cancel func())

func afterFuncScheduler(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// TickResult reports one rest-timer tick: remaining seconds plus any
// milestone or overtime events that fired on this tick.
type TickResult struct {
	Resting          bool  `json:"resting"`
	RemainingSeconds int   `json:"remaining_seconds"`
	Milestones       []int `json:"milestones,omitempty"`
	OvertimeStarted  bool  `json:"overtime_started"`
}

// Snapshot is the self-contained render state for companion displays.
type Snapshot struct {
	TemplateID      domain.TemplateID `json:"template_id"`
	Week            int               `json:"week"`
	Session         int               `json:"session"`
	ExerciseIndex   int               `json:"exercise_index"`
	ExerciseCount   int               `json:"exercise_count"`
	ExerciseName    string            `json:"exercise_name"`
	Lift            domain.Lift       `json:"lift"`
	TargetWeight    float64           `json:"target_weight"`
	Plates          plates.Result     `json:"plates"`
	CompletedSets   int               `json:"completed_sets"`
	TotalSets       int               `json:"total_sets"`
	NextTargetReps  int               `json:"next_target_reps"`
	Phase           domain.TimerPhase `json:"phase"`
	RestRemaining   int               `json:"rest_remaining_seconds"`
	Overtime        bool              `json:"overtime"`
	UndoOpen        bool              `json:"undo_open"`
	Stale           bool              `json:"stale"`
	StartedAt       time.Time         `json:"started_at"`
}

// Runtime drives one user's active session. All methods are safe for
// concurrent use. Mutations invoke the OnChange hook with the fresh state and
// snapshot; session end invokes OnFinished with the built log. Hooks run
// outside the runtime lock.
type Runtime struct {
	mu      sync.Mutex
	st      *domain.ActiveSessionState
	profile *domain.Profile

	clock    Clock
	schedule Scheduler

	// gen guards delayed tasks: any mutation bumps it, orphaning tasks
	// scheduled against the old value.
	gen           uint64
	cancelPending func()

	OnChange   func(st *domain.ActiveSessionState, snap Snapshot)
	OnFinished func(log *domain.SessionLog)
}

// Option configures a Runtime.
type Option func(*Runtime)

func WithClock(c Clock) Option         { return func(r *Runtime) { r.clock = c } }
func WithScheduler(s Scheduler) Option { return func(r *Runtime) { r.schedule = s } }

// New wraps an existing live state, typically one restored from storage.
func New(st *domain.ActiveSessionState, profile *domain.Profile, opts ...Option) *Runtime {
	r := &Runtime{
		st:       st,
		profile:  profile,
		clock:    time.Now,
		schedule: afterFuncScheduler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the live state, or nil once the session has ended.
func (r *Runtime) State() *domain.ActiveSessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st
}

// Stale reports whether the state has gone untouched past the staleness bound.
func (r *Runtime) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st != nil && r.stale()
}

func (r *Runtime) stale() bool {
	return r.clock().Sub(r.st.UpdatedAt) > StaleAfter
}

// CompleteSet marks the next incomplete set of the current exercise done at
// the target rep count, opens the undo window, and starts the rest timer. If
// that was the exercise's last set, no rest timer runs and auto-advance is
// scheduled instead.
func (r *Runtime) CompleteSet() error {
	r.mu.Lock()
	snap, fire, err := r.completeSetLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}
	fire(snap)
	return nil
}

func (r *Runtime) completeSetLocked() (Snapshot, func(Snapshot), error) {
	if err := r.mutableLocked(); err != nil {
		return Snapshot{}, nil, err
	}
	now := r.clock()
	cur := r.st.CurrentExercise

	target := -1
	for j, set := range r.st.Sets {
		if set.ExerciseIndex == cur && !set.Completed {
			target = j
			break
		}
	}
	if target == -1 {
		return Snapshot{}, nil, ErrExerciseComplete
	}

	set := &r.st.Sets[target]
	reps := set.TargetReps
	set.ActualReps = &reps
	set.Completed = true
	at := now
	set.CompletedAt = &at

	r.st.Undo = &domain.UndoRef{
		ExerciseIndex: cur,
		SetNumber:     set.SetNumber,
		CompletedAt:   now,
	}

	r.bumpLocked(now)
	if r.st.ExerciseDone(cur) {
		r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
		r.scheduleAdvanceLocked()
	} else {
		r.st.Timer = &domain.TimerState{
			Phase:       domain.PhaseRest,
			StartedAt:   now,
			RestSeconds: r.restSecondsLocked(cur),
		}
	}
	return r.snapshotLocked(), r.changeHook(), nil
}

// Undo reverts the most recently completed set of the current exercise if its
// window is still open. It is single-shot and clears the running rest timer.
func (r *Runtime) Undo() error {
	r.mu.Lock()
	snap, fire, err := r.undoLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}
	fire(snap)
	return nil
}

func (r *Runtime) undoLocked() (Snapshot, func(Snapshot), error) {
	if err := r.mutableLocked(); err != nil {
		return Snapshot{}, nil, err
	}
	now := r.clock()
	ref := r.st.Undo
	if ref == nil || ref.ExerciseIndex != r.st.CurrentExercise || now.Sub(ref.CompletedAt) > UndoWindow {
		return Snapshot{}, nil, ErrNothingToUndo
	}

	for j := range r.st.Sets {
		set := &r.st.Sets[j]
		if set.ExerciseIndex == ref.ExerciseIndex && set.SetNumber == ref.SetNumber {
			set.Completed = false
			set.ActualReps = nil
			set.CompletedAt = nil
			break
		}
	}
	r.st.Undo = nil
	r.bumpLocked(now)
	r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	return r.snapshotLocked(), r.changeHook(), nil
}

// FinishExercise ends the current exercise early, discarding its remaining
// sets. Allowed only for exercises with a set range, once the minimum is met.
func (r *Runtime) FinishExercise() error {
	r.mu.Lock()
	snap, fire, err := r.finishExerciseLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}
	fire(snap)
	return nil
}

func (r *Runtime) finishExerciseLocked() (Snapshot, func(Snapshot), error) {
	if err := r.mutableLocked(); err != nil {
		return Snapshot{}, nil, err
	}
	now := r.clock()
	cur := r.st.CurrentExercise
	ex := r.st.Exercises[cur]
	if ex.MinSets >= len(ex.RepPlan) {
		return Snapshot{}, nil, ErrNotEarlyFinish
	}
	if r.st.CompletedCount(cur) < ex.MinSets {
		return Snapshot{}, nil, ErrMinSetsNotMet
	}

	kept := r.st.Sets[:0]
	for _, set := range r.st.Sets {
		if set.ExerciseIndex == cur && !set.Completed {
			continue
		}
		kept = append(kept, set)
	}
	r.st.Sets = kept

	r.st.Undo = nil
	r.bumpLocked(now)
	r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	r.scheduleAdvanceLocked()
	return r.snapshotLocked(), r.changeHook(), nil
}

// Navigate jumps to an arbitrary exercise, clearing any running rest timer
// and recording the first-visit instant for duration accounting.
func (r *Runtime) Navigate(index int) error {
	r.mu.Lock()
	snap, fire, err := r.navigateLocked(index)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	fire(snap)
	return nil
}

func (r *Runtime) navigateLocked(index int) (Snapshot, func(Snapshot), error) {
	if err := r.mutableLocked(); err != nil {
		return Snapshot{}, nil, err
	}
	if index < 0 || index >= len(r.st.Exercises) {
		return Snapshot{}, nil, ErrExerciseIndex
	}
	now := r.clock()
	r.visitLocked(index, now)
	r.bumpLocked(now)
	r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	return r.snapshotLocked(), r.changeHook(), nil
}

// SetWeightOverride records a live weight override on one exercise. The
// override feeds the plate breakdown and the logged weight but never touches
// the compiled schedule.
func (r *Runtime) SetWeightOverride(index int, weight float64) error {
	r.mu.Lock()
	snap, fire, err := r.setOverrideLocked(index, weight)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	fire(snap)
	return nil
}

func (r *Runtime) setOverrideLocked(index int, weight float64) (Snapshot, func(Snapshot), error) {
	if err := r.mutableLocked(); err != nil {
		return Snapshot{}, nil, err
	}
	if index < 0 || index >= len(r.st.Exercises) {
		return Snapshot{}, nil, ErrExerciseIndex
	}
	w := weight
	r.st.Exercises[index].WeightOverride = &w
	r.bumpLocked(r.clock())
	return r.snapshotLocked(), r.changeHook(), nil
}

// Finish ends the session now and returns the immutable log. The runtime is
// spent afterwards; every further call reports no active session.
func (r *Runtime) Finish(logID string) (*domain.SessionLog, error) {
	r.mu.Lock()
	if r.st == nil {
		r.mu.Unlock()
		return nil, domain.ErrNoActiveSession
	}
	log := r.finishLocked(logID)
	r.mu.Unlock()
	return log, nil
}

func (r *Runtime) finishLocked(logID string) *domain.SessionLog {
	now := r.clock()
	r.bumpLocked(now)
	log := BuildLog(r.st, logID, now)
	r.st = nil
	return log
}

// Resume acknowledges a stale session and makes it live again.
func (r *Runtime) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st == nil {
		return domain.ErrNoActiveSession
	}
	if !r.stale() {
		return ErrSessionNotStale
	}
	now := r.clock()
	r.bumpLocked(now)
	r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	return nil
}

// Discard abandons a stale session, logging whatever was completed. The
// caller decides whether the program position still advances.
func (r *Runtime) Discard(logID string) (*domain.SessionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st == nil {
		return nil, domain.ErrNoActiveSession
	}
	return r.finishLocked(logID), nil
}

// Tick advances the rest timer, firing each milestone and the overtime
// transition at most once per rest period.
func (r *Runtime) Tick() (TickResult, error) {
	r.mu.Lock()
	if r.st == nil {
		r.mu.Unlock()
		return TickResult{}, domain.ErrNoActiveSession
	}
	t := r.st.Timer
	if t == nil || t.Phase != domain.PhaseRest {
		r.mu.Unlock()
		return TickResult{}, nil
	}

	elapsed := int(r.clock().Sub(t.StartedAt).Seconds())
	remaining := t.RestSeconds - elapsed

	res := TickResult{Resting: true, RemainingSeconds: remaining}
	for _, m := range restMilestones {
		if remaining > m || m >= t.RestSeconds || firedMilestone(t, m) {
			continue
		}
		t.FiredMilestones = append(t.FiredMilestones, m)
		res.Milestones = append(res.Milestones, m)
	}
	if remaining <= 0 && !t.Overtime {
		t.Overtime = true
		res.OvertimeStarted = true
	}

	// Fired events must reach storage, or a crash restore re-fires them.
	if len(res.Milestones) > 0 || res.OvertimeStarted {
		snap := r.snapshotLocked()
		fire := r.changeHook()
		r.mu.Unlock()
		fire(snap)
		return res, nil
	}
	r.mu.Unlock()
	return res, nil
}

// Snapshot returns the companion-display view of the live session.
func (r *Runtime) Snapshot() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st == nil {
		return Snapshot{}, domain.ErrNoActiveSession
	}
	return r.snapshotLocked(), nil
}

func (r *Runtime) snapshotLocked() Snapshot {
	now := r.clock()
	cur := r.st.CurrentExercise
	ex := r.st.Exercises[cur]
	weight := resolvedWeight(ex)

	snap := Snapshot{
		TemplateID:    r.st.TemplateID,
		Week:          r.st.Week,
		Session:       r.st.Session,
		ExerciseIndex: cur,
		ExerciseCount: len(r.st.Exercises),
		ExerciseName:  ex.Name,
		Lift:          ex.Lift,
		TargetWeight:  weight,
		CompletedSets: r.st.CompletedCount(cur),
		TotalSets:     len(r.st.SetsFor(cur)),
		Phase:         domain.PhaseExercise,
		Stale:         r.stale(),
		StartedAt:     r.st.StartedAt,
	}

	for _, j := range r.st.SetsFor(cur) {
		if !r.st.Sets[j].Completed {
			snap.NextTargetReps = r.st.Sets[j].TargetReps
			break
		}
	}

	mode := plates.ModeBarbell
	reference := r.profile.BarWeight
	if ex.Bodyweight {
		mode = plates.ModeBelt
		reference = 0
	}
	snap.Plates = plates.Calculate(plates.Request{
		Target:    weight,
		Reference: reference,
		Inventory: r.inventoryFor(ex),
		Mode:      mode,
		Increment: r.profile.RoundingIncrement,
	})

	if t := r.st.Timer; t != nil && t.Phase == domain.PhaseRest {
		snap.Phase = domain.PhaseRest
		snap.RestRemaining = t.RestSeconds - int(now.Sub(t.StartedAt).Seconds())
		snap.Overtime = t.Overtime
	}
	if u := r.st.Undo; u != nil && u.ExerciseIndex == cur && now.Sub(u.CompletedAt) <= UndoWindow {
		snap.UndoOpen = true
	}
	return snap
}

func (r *Runtime) inventoryFor(ex domain.SessionExercise) domain.PlateInventory {
	if ex.Bodyweight {
		return r.profile.BeltPlates
	}
	return r.profile.BarbellPlates
}

// mutableLocked gates every state-changing operation on liveness.
func (r *Runtime) mutableLocked() error {
	if r.st == nil {
		return domain.ErrNoActiveSession
	}
	if r.stale() {
		return ErrSessionStale
	}
	return nil
}

// bumpLocked invalidates pending delayed tasks and touches UpdatedAt.
func (r *Runtime) bumpLocked(now time.Time) {
	r.gen++
	if r.cancelPending != nil {
		r.cancelPending()
		r.cancelPending = nil
	}
	r.st.UpdatedAt = now
}

// visitLocked moves the cursor and records a first-visit instant.
func (r *Runtime) visitLocked(index int, now time.Time) {
	r.st.CurrentExercise = index
	if r.st.ExerciseStarts[index].IsZero() {
		r.st.ExerciseStarts[index] = now
	}
}

// scheduleAdvanceLocked arms the delayed auto-advance for a finished
// exercise. If the whole session is done by then, it completes instead.
func (r *Runtime) scheduleAdvanceLocked() {
	gen := r.gen
	r.cancelPending = r.schedule(AutoAdvanceDelay, func() { r.autoAdvance(gen) })
}

func (r *Runtime) autoAdvance(gen uint64) {
	r.mu.Lock()
	if r.st == nil || r.gen != gen {
		r.mu.Unlock()
		return
	}
	// This task is the pending one; it must not cancel itself from bumpLocked.
	r.cancelPending = nil
	now := r.clock()

	next := -1
	for i := range r.st.Exercises {
		if i != r.st.CurrentExercise && !r.st.ExerciseDone(i) {
			next = i
			break
		}
	}

	if next == -1 {
		log := r.finishLocked(newLogID(now))
		finished := r.OnFinished
		r.mu.Unlock()
		if finished != nil {
			finished(log)
		}
		return
	}

	r.visitLocked(next, now)
	r.st.Undo = nil
	r.bumpLocked(now)
	r.st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	snap := r.snapshotLocked()
	fire := r.changeHook()
	r.mu.Unlock()
	fire(snap)
}

// changeHook snapshots the OnChange callback so it can run unlocked.
func (r *Runtime) changeHook() func(Snapshot) {
	st, cb := r.st, r.OnChange
	return func(snap Snapshot) {
		if cb != nil && st != nil {
			cb(st, snap)
		}
	}
}

func firedMilestone(t *domain.TimerState, m int) bool {
	for _, f := range t.FiredMilestones {
		if f == m {
			return true
		}
	}
	return false
}

// restSecondsLocked resolves rest for the exercise: the profile default when
// set, otherwise an intensity-tiered fallback.
func (r *Runtime) restSecondsLocked(index int) int {
	if r.profile != nil && r.profile.DefaultRestSeconds > 0 {
		return r.profile.DefaultRestSeconds
	}
	pct := r.st.Exercises[index].Percentage
	switch {
	case pct >= 90:
		return restLongSeconds
	case pct >= 70:
		return restMediumSeconds
	default:
		return restShortSeconds
	}
}
