package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomodoroout "studyhub/internal/modules/pomodoro/adapter/out"
	"studyhub/internal/modules/pomodoro/domain"
	portout "studyhub/internal/modules/pomodoro/port/out"
	"studyhub/internal/modules/pomodoro/service"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/kv"
	"studyhub/internal/platform/scheduler"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *recordingNotifier) Notify(_ context.Context, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

type recordingXP struct {
	amounts []int
}

func (x *recordingXP) Award(_ context.Context, amount int) error {
	x.amounts = append(x.amounts, amount)
	return nil
}

type fakeTicker struct {
	registered int
	active     int
}

type fakeHandle struct{ t *fakeTicker }

func (h fakeHandle) Stop() { h.t.active-- }

func (t *fakeTicker) Every(string, time.Duration, func(context.Context)) portout.Stopper {
	t.registered++
	t.active++
	return fakeHandle{t: t}
}

type failingStore struct{}

func (failingStore) Load(context.Context) (domain.State, bool, error) { return domain.State{}, false, nil }
func (failingStore) Save(context.Context, domain.State) error         { return errors.New("read-only") }

func seed(t *testing.T, store kv.Store, state domain.State) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), kv.KeyPomodoro, state))
}

func newEngine(t *testing.T, store kv.Store, clk clockwork.Clock, cfg service.Config, opts ...service.Option) *service.Engine {
	t.Helper()
	e := service.NewEngine(clk, pomodoroout.NewKVStateStore(store), cfg, opts...)
	require.NoError(t, e.Load(context.Background()))
	return e
}

func TestOneSecondLeftFlipsToBreakAndCompletesWorkOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	seed(t, store, domain.State{Phase: domain.PhaseWork, SecondsRemaining: 1, WorkMinutes: 1, BreakMinutes: 5, Running: true})
	notifier := &recordingNotifier{}
	xp := &recordingXP{}
	e := newEngine(t, store, clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 5, FocusXP: 25},
		service.WithNotifier(notifier), service.WithXP(xp))
	completions := 0
	e.OnWorkComplete(func() { completions++ })

	require.NoError(t, e.Tick(ctx))

	state := e.State()
	assert.Equal(t, domain.PhaseBreak, state.Phase)
	assert.Equal(t, 5*60, state.SecondsRemaining)
	assert.True(t, state.Running)
	assert.Equal(t, 1, completions)
	assert.Equal(t, []int{25}, xp.amounts)
	assert.Equal(t, []string{service.FocusCompleteTitle}, notifier.titles)
}

func TestNWorkFlipsFireNCompletions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 1, BreakMinutes: 1})
	completions := 0
	e.OnWorkComplete(func() { completions++ })
	require.NoError(t, e.Start(ctx))

	const cycles = 3
	prev := e.State().Phase
	for i := 0; i < cycles*2*60; i++ {
		require.NoError(t, e.Tick(ctx))
		state := e.State()
		require.GreaterOrEqual(t, state.SecondsRemaining, 0)
		if state.Phase != prev {
			require.Equal(t, prev.Other(), state.Phase)
			prev = state.Phase
		}
	}
	assert.Equal(t, cycles, completions)
	assert.Equal(t, domain.PhaseWork, e.State().Phase)
}

func TestTickWhilePausedIsNoop(t *testing.T) {
	t.Parallel()
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 5})
	before := e.State()
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, before, e.State())
}

func TestSkipAppliesCompletionOnlyWhenLeavingWork(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	xp := &recordingXP{}
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 5, FocusXP: 25}, service.WithXP(xp))
	completions := 0
	cancel := e.OnWorkComplete(func() { completions++ })

	require.NoError(t, e.Skip(ctx))
	assert.Equal(t, domain.PhaseBreak, e.State().Phase)
	assert.Equal(t, 300, e.State().SecondsRemaining)
	assert.Equal(t, 1, completions)

	require.NoError(t, e.Skip(ctx))
	assert.Equal(t, domain.PhaseWork, e.State().Phase)
	assert.Equal(t, 1, completions)

	cancel()
	require.NoError(t, e.Skip(ctx))
	assert.Equal(t, 1, completions)
	assert.Equal(t, []int{25, 25}, xp.amounts)
}

func TestSwitchPhaseKeepsCountdownWithoutSideEffects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	xp := &recordingXP{}
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 10, FocusXP: 25}, service.WithXP(xp))
	completions := 0
	e.OnWorkComplete(func() { completions++ })

	changed, err := e.SwitchPhase(ctx, domain.PhaseWork)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, e.Start(ctx))
	for range 10 {
		require.NoError(t, e.Tick(ctx))
	}
	require.NoError(t, e.Pause(ctx))
	require.Equal(t, 1490, e.State().SecondsRemaining)

	changed, err = e.SwitchPhase(ctx, domain.PhaseBreak)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.PhaseBreak, e.State().Phase)
	assert.Equal(t, 1490, e.State().SecondsRemaining)

	changed, err = e.SwitchPhase(ctx, domain.Phase("nap"))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, completions)
	assert.Empty(t, xp.amounts)
}

func TestStartPauseResetManageTickRegistration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ticker := &fakeTicker{}
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 5}, service.WithTicker(ticker))

	require.NoError(t, e.Start(ctx))
	require.NoError(t, e.Start(ctx))
	assert.Equal(t, 1, ticker.active)
	require.NoError(t, e.Pause(ctx))
	assert.Equal(t, 0, ticker.active)
	require.NoError(t, e.Toggle(ctx))
	assert.True(t, e.State().Running)
	assert.Equal(t, 1, ticker.active)

	require.NoError(t, e.Tick(ctx))
	require.NoError(t, e.Reset(ctx))
	state := e.State()
	assert.False(t, state.Running)
	assert.Equal(t, domain.PhaseWork, state.Phase)
	assert.Equal(t, 25*60, state.SecondsRemaining)
	assert.Equal(t, 0, ticker.active)
	assert.Equal(t, 2, ticker.registered)
}

func TestSetMinutesClampsAndOnlyTrimsOverflow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEngine(t, kv.NewMemory(), clockwork.NewFakeClockAt(t0), service.Config{WorkMinutes: 25, BreakMinutes: 5})

	require.NoError(t, e.SetWorkMinutes(ctx, 500))
	assert.Equal(t, 120, e.State().WorkMinutes)
	assert.Equal(t, 25*60, e.State().SecondsRemaining, "countdown is not resized")

	require.NoError(t, e.SetBreakMinutes(ctx, 0))
	assert.Equal(t, 1, e.State().BreakMinutes)

	require.NoError(t, e.SetWorkMinutes(ctx, 2))
	assert.Equal(t, 2*60, e.State().SecondsRemaining, "countdown trimmed to the longest phase")
}

func TestSnapshotResumeRestoresRemainingAsIs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	clk := clockwork.NewFakeClockAt(t0)
	first := newEngine(t, store, clk, service.Config{WorkMinutes: 25, BreakMinutes: 5})
	require.NoError(t, first.Start(ctx))
	for i := 0; i < 10; i++ {
		require.NoError(t, first.Tick(ctx))
	}

	clk.Advance(time.Hour)
	ticker := &fakeTicker{}
	second := newEngine(t, store, clk, service.Config{WorkMinutes: 25, BreakMinutes: 5}, service.WithTicker(ticker))
	state := second.State()
	assert.Equal(t, 25*60-10, state.SecondsRemaining)
	assert.True(t, state.Running)
	assert.Nil(t, state.PhaseEndsAt)
	assert.Equal(t, 1, ticker.active, "a running timer resumes ticking")
}

func TestDeadlineResumeAccountsForElapsedTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	clk := clockwork.NewFakeClockAt(t0)
	cfg := service.Config{WorkMinutes: 25, BreakMinutes: 5, Resume: service.ResumeDeadline}
	first := newEngine(t, store, clk, cfg)
	require.NoError(t, first.Start(ctx))
	require.NotNil(t, first.State().PhaseEndsAt)
	assert.Equal(t, t0.Add(25*time.Minute), *first.State().PhaseEndsAt)

	clk.Advance(100 * time.Second)
	second := newEngine(t, store, clk, cfg)
	assert.Equal(t, 25*60-100, second.State().SecondsRemaining)

	clk.Advance(time.Hour)
	third := newEngine(t, store, clk, cfg)
	assert.Equal(t, 0, third.State().SecondsRemaining)
	require.NoError(t, third.Tick(ctx))
	assert.Equal(t, domain.PhaseBreak, third.State().Phase)

	require.NoError(t, third.Pause(ctx))
	assert.Nil(t, third.State().PhaseEndsAt)
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	t.Parallel()
	e := service.NewEngine(clockwork.NewFakeClockAt(t0), failingStore{}, service.Config{WorkMinutes: 25, BreakMinutes: 5})
	err := e.Start(context.Background())
	require.ErrorIs(t, err, apperrors.ErrPersist)
	assert.True(t, e.State().Running)
}

func TestSchedulerDrivesTicksUntilPaused(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	clk := clockwork.NewFakeClockAt(t0)
	sched := scheduler.New(clk, nil)
	done := make(chan struct{})
	go func() {
		_ = sched.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	e := newEngine(t, kv.NewMemory(), clk, service.Config{WorkMinutes: 25, BreakMinutes: 5},
		service.WithTicker(pomodoroout.NewSchedulerTicker(sched)))
	require.NoError(t, e.Start(context.Background()))
	clk.BlockUntil(1)

	for i := 1; i <= 3; i++ {
		clk.Advance(time.Second)
		want := 25*60 - i
		require.Eventually(t, func() bool { return e.State().SecondsRemaining == want }, 2*time.Second, 5*time.Millisecond)
	}
	require.NoError(t, e.Pause(context.Background()))
	assert.Zero(t, sched.Len())
}
