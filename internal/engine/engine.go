// Package engine owns the AppState aggregate: the daily rollover, the task
// lifecycle state machine, and the XP side effects. Every mutation goes
// through one mutex-guarded entry point so the periodic rollover check and
// user actions never interleave.
package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/widget"
)

var ErrUnknownAction = errors.New("unknown action")

type Options struct {
	Store       *state.Store
	Clock       clock.Clock
	Progression pet.Progression
	Widget      widget.Syncer
	Logger      *log.Logger
}

type Engine struct {
	mu     sync.Mutex
	store  *state.Store
	clock  clock.Clock
	prog   pet.Progression
	widget widget.Syncer
	logger *log.Logger

	st       state.AppState
	nextSync time.Time
}

// New loads the stored state, runs a rollover if one is due, selects the
// nearest task, and persists the result.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("engine: store is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Widget == nil {
		opts.Widget = widget.NopSyncer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if len(opts.Progression.Stages) == 0 {
		opts.Progression = pet.DefaultProgression()
	}

	e := &Engine{
		store:  opts.Store,
		clock:  opts.Clock,
		prog:   opts.Progression,
		widget: opts.Widget,
		logger: opts.Logger,
	}

	now := e.clock.Now()
	e.st = e.store.Load(clock.DayKey(now))
	e.st.Normalize(e.prog)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shouldRolloverLocked(now) {
		e.performRolloverLocked(now)
	}
	e.st.CurrentTaskID = e.nearestTaskIDLocked(now)
	e.commitLocked(now)
	return e, nil
}

// State returns a deep copy of the aggregate.
func (e *Engine) State() state.AppState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

// Progression exposes the active XP table for read-side handlers.
func (e *Engine) Progression() pet.Progression { return e.prog }

// mutate is the single serialized entry point for every state change. A
// pending rollover always runs first, then fn; the commit persists and
// syncs the widget best-effort.
func (e *Engine) mutate(fn func(now time.Time) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	rolled := false
	if e.shouldRolloverLocked(now) {
		e.performRolloverLocked(now)
		e.st.CurrentTaskID = e.nearestTaskIDLocked(now)
		rolled = true
	}
	changed := fn(now)
	if rolled || changed {
		e.commitLocked(now)
	}
}

// Tick is the periodic background check: run a due rollover, and refresh
// the widget snapshot whenever the active hour has moved on.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if e.shouldRolloverLocked(now) {
		e.performRolloverLocked(now)
		e.st.CurrentTaskID = e.nearestTaskIDLocked(now)
		e.commitLocked(now)
		return
	}
	if now.Before(e.nextSync) {
		return
	}
	e.syncWidgetLocked(now)
	e.nextSync = clock.NextBoundary(now, e.st.Settings.GraceMinutes)
}

// commitLocked persists and notifies the widget. Both edges are
// best-effort: failures are logged, the in-memory state stays the source
// of truth for the session.
func (e *Engine) commitLocked(now time.Time) {
	if err := e.store.Save(e.st); err != nil {
		e.logger.Printf("engine: save failed (state kept in memory): %v", err)
	}
	e.syncWidgetLocked(now)
	e.nextSync = clock.NextBoundary(now, e.st.Settings.GraceMinutes)
}

func (e *Engine) syncWidgetLocked(now time.Time) {
	today := clock.DayKey(now)
	todays := e.st.TasksForDay(today)

	currentIndex := 0
	for i, t := range todays {
		if t.ID == e.st.CurrentTaskID {
			currentIndex = i
			break
		}
	}

	snap := widget.Snapshot{
		TodayTasks:       todays,
		CurrentIndex:     currentIndex,
		CurrentTaskID:    e.st.CurrentTaskID,
		PetState:         e.st.PetState,
		Stage:            e.prog.StageMeta(e.st.PetState.StageIndex),
		ProgressPct:      e.prog.ProgressToNext(e.st.PetState),
		GraceMinutes:     e.st.Settings.GraceMinutes,
		LastRolloverDate: e.st.LastRolloverDate,
		LastUpdated:      now.UnixMilli(),
	}
	if err := e.widget.Sync(snap); err != nil {
		e.logger.Printf("engine: widget sync failed: %v", err)
		return
	}
	if err := e.widget.RequestReload(); err != nil {
		e.logger.Printf("engine: widget reload request failed: %v", err)
	}
}
