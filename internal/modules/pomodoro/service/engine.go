package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/pomodoro/domain"
	pomodoroout "studyhub/internal/modules/pomodoro/port/out"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/logging"
)

const (
	TickPeriod = time.Second
	tickJob    = "pomodoro-tick"

	FocusCompleteTitle = "Focus complete"
	FocusCompleteBody  = "Time for a break!"
)

type ResumeMode string

const (
	ResumeSnapshot ResumeMode = "snapshot"
	ResumeDeadline ResumeMode = "deadline"
)

type Config struct {
	WorkMinutes  int
	BreakMinutes int
	Resume       ResumeMode
	FocusXP      int
}

// Engine owns the interval timer. Every mutation is persisted before the
// call returns; a failed write keeps the in-memory change and reports
// ErrPersist.
type Engine struct {
	clock    clock.Clock
	store    pomodoroout.StateStore
	notifier pomodoroout.Notifier
	xp       pomodoroout.XPAwarder
	ticker   pomodoroout.Ticker
	logger   hclog.Logger
	cfg      Config

	mu        sync.Mutex
	state     domain.State
	handle    pomodoroout.Stopper
	observers map[int]func()
	nextObs   int
}

type Option func(*Engine)

func WithNotifier(n pomodoroout.Notifier) Option { return func(e *Engine) { e.notifier = n } }
func WithXP(x pomodoroout.XPAwarder) Option      { return func(e *Engine) { e.xp = x } }

// WithTicker lets the engine drive itself. Without one, Tick must be called
// by the host.
func WithTicker(t pomodoroout.Ticker) Option { return func(e *Engine) { e.ticker = t } }

func WithLogger(l hclog.Logger) Option { return func(e *Engine) { e.logger = l } }

func NewEngine(clock clock.Clock, store pomodoroout.StateStore, cfg Config, opts ...Option) *Engine {
	if cfg.Resume == "" {
		cfg.Resume = ResumeSnapshot
	}
	e := &Engine{
		clock:     clock,
		store:     store,
		cfg:       cfg,
		state:     domain.NewState(cfg.WorkMinutes, cfg.BreakMinutes),
		observers: map[int]func(){},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDiscard(e.logger).Named("pomodoro")
	return e
}

// Load rehydrates the timer. A running timer resumes ticking.
func (e *Engine) Load(ctx context.Context) error {
	state, found, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load pomodoro: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !found {
		return nil
	}
	if e.cfg.Resume == ResumeDeadline && state.Running && state.PhaseEndsAt != nil {
		left := state.PhaseEndsAt.Sub(e.clock.Now()).Seconds()
		state.SecondsRemaining = max(0, int(math.Ceil(left)))
	}
	if e.cfg.Resume == ResumeSnapshot {
		state.PhaseEndsAt = nil
	}
	e.state = state.Normalize()
	if e.state.Running {
		e.startTickingLocked()
	}
	return nil
}

func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// OnWorkComplete registers fn to run once per completed work phase. The
// returned func removes it.
func (e *Engine) OnWorkComplete(fn func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	return func() {
		e.mu.Lock()
		delete(e.observers, id)
		e.mu.Unlock()
	}
}

// Tick is the 1s callback. It is a no-op while paused.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	if !e.state.Running {
		e.mu.Unlock()
		return nil
	}
	next, completed, flipped := e.state.Tick()
	e.state = next
	err := e.persistLocked(ctx)
	observers := e.observersLocked(flipped && completed == domain.PhaseWork)
	e.mu.Unlock()

	if flipped {
		e.logger.Debug("phase flipped", "completed", completed, "next", next.Phase)
	}
	if flipped && completed == domain.PhaseWork {
		err = errors.Join(err, e.completeWork(ctx, observers))
	}
	return err
}

func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Running {
		return nil
	}
	e.state.Running = true
	e.startTickingLocked()
	return e.persistLocked(ctx)
}

func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Running {
		return nil
	}
	e.state.Running = false
	e.stopTickingLocked()
	return e.persistLocked(ctx)
}

func (e *Engine) Toggle(ctx context.Context) error {
	if e.State().Running {
		return e.Pause(ctx)
	}
	return e.Start(ctx)
}

// SwitchPhase relabels the current countdown as target without completion
// side effects. The remaining seconds carry over. Switching to the current
// phase changes nothing.
func (e *Engine) SwitchPhase(ctx context.Context, target domain.Phase) (bool, error) {
	if _, ok := domain.ParsePhase(string(target)); !ok {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Phase == target {
		return false, nil
	}
	e.state.Phase = target
	e.fitRemainingLocked()
	return true, e.persistLocked(ctx)
}

func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Phase = domain.PhaseWork
	e.state.SecondsRemaining = e.state.PhaseSeconds(domain.PhaseWork)
	e.state.Running = false
	e.stopTickingLocked()
	return e.persistLocked(ctx)
}

// Skip is a user-triggered flip with the same side effects as a natural one.
func (e *Engine) Skip(ctx context.Context) error {
	e.mu.Lock()
	next, completed := e.state.Flip()
	e.state = next
	err := e.persistLocked(ctx)
	observers := e.observersLocked(completed == domain.PhaseWork)
	e.mu.Unlock()

	if completed == domain.PhaseWork {
		err = errors.Join(err, e.completeWork(ctx, observers))
	}
	return err
}

func (e *Engine) SetWorkMinutes(ctx context.Context, minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.WorkMinutes = domain.ClampWork(minutes)
	e.fitRemainingLocked()
	return e.persistLocked(ctx)
}

func (e *Engine) SetBreakMinutes(ctx context.Context, minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.BreakMinutes = domain.ClampBreak(minutes)
	e.fitRemainingLocked()
	return e.persistLocked(ctx)
}

// Close deregisters the tick without changing persisted state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickingLocked()
}

func (e *Engine) fitRemainingLocked() {
	if limit := e.state.MaxSeconds(); e.state.SecondsRemaining > limit {
		e.state.SecondsRemaining = limit
	}
}

func (e *Engine) startTickingLocked() {
	if e.ticker == nil || e.handle != nil {
		return
	}
	e.handle = e.ticker.Every(tickJob, TickPeriod, func(ctx context.Context) {
		if err := e.Tick(ctx); err != nil {
			e.logger.Warn("tick not persisted", "error", err)
		}
	})
}

func (e *Engine) stopTickingLocked() {
	if e.handle == nil {
		return
	}
	e.handle.Stop()
	e.handle = nil
}

func (e *Engine) observersLocked(workCompleted bool) []func() {
	if !workCompleted {
		return nil
	}
	out := make([]func(), 0, len(e.observers))
	for _, fn := range e.observers {
		out = append(out, fn)
	}
	return out
}

// completeWork runs outside the lock so observers may call back into the engine.
func (e *Engine) completeWork(ctx context.Context, observers []func()) error {
	var err error
	if e.xp != nil && e.cfg.FocusXP > 0 {
		if awardErr := e.xp.Award(ctx, e.cfg.FocusXP); awardErr != nil {
			e.logger.Warn("focus xp not awarded", "amount", e.cfg.FocusXP, "error", awardErr)
			err = fmt.Errorf("award focus xp: %w", awardErr)
		}
	}
	if e.notifier != nil {
		e.notifier.Notify(ctx, FocusCompleteTitle, FocusCompleteBody)
	}
	for _, fn := range observers {
		fn()
	}
	return err
}

func (e *Engine) persistLocked(ctx context.Context) error {
	e.state.PhaseEndsAt = nil
	if e.cfg.Resume == ResumeDeadline && e.state.Running {
		endsAt := e.clock.Now().Add(time.Duration(e.state.SecondsRemaining) * time.Second)
		e.state.PhaseEndsAt = &endsAt
	}
	if err := e.store.Save(ctx, e.state); err != nil {
		e.logger.Warn("pomodoro not persisted", "error", err)
		return fmt.Errorf("%w: pomodoro: %v", apperrors.ErrPersist, err)
	}
	return nil
}
