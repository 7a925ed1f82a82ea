package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionout "studyhub/internal/modules/session/adapter/out"
	"studyhub/internal/modules/session/domain"
	sessiondto "studyhub/internal/modules/session/dto"
	sessionin "studyhub/internal/modules/session/port/in"
	"studyhub/internal/modules/session/service"
	"studyhub/internal/modules/session/usecase"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/kv"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

type fakeCatalog map[string]string

func (c fakeCatalog) Lookup(_ context.Context, id string) (string, bool) {
	label, ok := c[id]
	return label, ok
}

type recordingAwarder struct {
	amounts []int
}

func (r *recordingAwarder) Award(_ context.Context, amount int) error {
	r.amounts = append(r.amounts, amount)
	return nil
}

type failingLog struct{}

func (failingLog) Load(context.Context) ([]domain.StudySession, error) { return nil, nil }
func (failingLog) Save(context.Context, []domain.StudySession) error {
	return errors.New("disk full")
}

var (
	t0      = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	catalog = fakeCatalog{"c1": "CS101: Algorithms", "c2": "MATH200: Linear Algebra"}
)

func newTracker(t *testing.T, store kv.Store, clk *fakeClock, opts ...usecase.Option) (*service.SessionService, sessionin.Usecase) {
	t.Helper()
	svc := service.NewSessionService(clk, &seqID{}, sessionout.NewKVSessionLog(store), sessionout.NewKVActiveSessionStore(store), nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc, usecase.NewInteractor(svc, catalog, opts...)
}

func TestEndRoundsDurationAndAwardsMinuteXP(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(90 * time.Second)}}
	awarder := &recordingAwarder{}
	_, uc := newTracker(t, kv.NewMemory(), clk, usecase.WithMinuteXP(awarder, 1))

	start, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)
	require.True(t, start.Started)
	assert.Nil(t, start.Ended)
	assert.Equal(t, "CS101: Algorithms", start.Session.CourseLabel)

	end, err := uc.End(ctx)
	require.NoError(t, err)
	require.True(t, end.Ended)
	assert.Equal(t, 2, end.Session.DurationMinutes)
	assert.Equal(t, "2 min", end.Session.DurationLabel)
	require.NotNil(t, end.Session.EndTime)
	assert.Equal(t, 2, end.XPAwarded)
	assert.Equal(t, []int{2}, awarder.amounts)

	_, active := uc.Active(ctx)
	assert.False(t, active)
	assert.Equal(t, 2, uc.TotalMinutes(ctx, "c1"))
	assert.Equal(t, 1, uc.Count(ctx))
}

func TestStartWhileActiveEndsPreviousSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(25 * time.Minute), t0.Add(25 * time.Minute)}}
	awarder := &recordingAwarder{}
	svc, uc := newTracker(t, kv.NewMemory(), clk, usecase.WithMinuteXP(awarder, 1))

	_, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)
	second, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c2"})
	require.NoError(t, err)

	require.NotNil(t, second.Ended)
	assert.Equal(t, "c1", second.Ended.CourseID)
	assert.Equal(t, 25, second.Ended.DurationMinutes)
	assert.Equal(t, []int{25}, awarder.amounts)

	active, ok := uc.Active(ctx)
	require.True(t, ok)
	assert.Equal(t, "c2", active.CourseID)
	assert.Nil(t, active.EndTime)

	completed := svc.Completed()
	require.Len(t, completed, 1)
	for _, s := range completed {
		assert.False(t, s.Active(), "log must hold completed sessions only")
	}
}

func TestStartRefusesEmptyAndUnknownCourse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, uc := newTracker(t, kv.NewMemory(), &fakeClock{values: []time.Time{t0}})

	for _, courseID := range []string{"", "   ", "missing"} {
		out, err := uc.Start(ctx, sessiondto.StartInput{CourseID: courseID})
		require.NoError(t, err)
		assert.False(t, out.Started, "course %q", courseID)
	}
	_, ok := uc.Active(ctx)
	assert.False(t, ok)
	assert.Zero(t, uc.Count(ctx))
}

func TestEndWithoutActiveSessionIsNoop(t *testing.T) {
	t.Parallel()
	_, uc := newTracker(t, kv.NewMemory(), &fakeClock{values: []time.Time{t0}})

	out, err := uc.End(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Ended)
	assert.Zero(t, uc.Count(context.Background()))
}

func TestActiveSessionSurvivesReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	_, first := newTracker(t, store, &fakeClock{values: []time.Time{t0}})
	started, err := first.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)

	_, second := newTracker(t, store, &fakeClock{values: []time.Time{t0.Add(10 * time.Minute)}})
	active, ok := second.Active(ctx)
	require.True(t, ok)
	assert.Equal(t, started.Session.ID, active.ID)

	end, err := second.End(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, end.Session.DurationMinutes)

	_, third := newTracker(t, store, &fakeClock{values: []time.Time{t0}})
	_, ok = third.Active(ctx)
	assert.False(t, ok)
	assert.Equal(t, 1, third.Count(ctx))
}

func TestRecentIsNewestFirstAndLimited(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var times []time.Time
	for i := 0; i < 7; i++ {
		start := t0.Add(time.Duration(i) * time.Hour)
		times = append(times, start, start.Add(time.Duration(i+1)*time.Minute))
	}
	_, uc := newTracker(t, kv.NewMemory(), &fakeClock{values: times})
	for i := 0; i < 7; i++ {
		_, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
		require.NoError(t, err)
		_, err = uc.End(ctx)
		require.NoError(t, err)
	}

	recent := uc.Recent(ctx, sessiondto.RecentInput{})
	require.Len(t, recent, domain.DefaultRecentLimit)
	assert.Equal(t, 7, recent[0].DurationMinutes)
	assert.Equal(t, 3, recent[4].DurationMinutes)

	assert.Len(t, uc.Recent(ctx, sessiondto.RecentInput{Limit: 2}), 2)
	assert.Equal(t, 1+2+3+4+5+6+7, uc.TotalMinutes(ctx, "c1"))
}

func TestPurgeCourseDropsLogAndActiveWithoutAccounting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(5 * time.Minute), t0.Add(6 * time.Minute), t0.Add(9 * time.Minute), t0.Add(10 * time.Minute)}}
	awarder := &recordingAwarder{}
	_, uc := newTracker(t, kv.NewMemory(), clk, usecase.WithMinuteXP(awarder, 1))

	_, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c2"})
	require.NoError(t, err)
	_, err = uc.End(ctx)
	require.NoError(t, err)
	_, err = uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)
	_, err = uc.End(ctx)
	require.NoError(t, err)
	_, err = uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)

	require.NoError(t, uc.PurgeCourse(ctx, "c1"))

	_, ok := uc.Active(ctx)
	assert.False(t, ok)
	assert.Zero(t, uc.TotalMinutes(ctx, "c1"))
	assert.Equal(t, 5, uc.TotalMinutes(ctx, "c2"))
	assert.Equal(t, 1, uc.Count(ctx))
	assert.Equal(t, []int{5, 3}, awarder.amounts)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(3 * time.Minute)}}
	svc := service.NewSessionService(clk, &seqID{}, failingLog{}, sessionout.NewKVActiveSessionStore(store), nil)
	uc := usecase.NewInteractor(svc, catalog)

	_, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)
	end, err := uc.End(ctx)
	require.ErrorIs(t, err, apperrors.ErrPersist)
	assert.True(t, end.Ended)
	assert.Equal(t, 3, uc.TotalMinutes(ctx, "c1"))
}

func TestExportWritesNotesAndPreservesIndexText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(75 * time.Minute)}}
	_, uc := newTracker(t, kv.NewMemory(), clk, usecase.WithExporter(sessionout.NewMarkdownExporter()))

	_, err := uc.Start(ctx, sessiondto.StartInput{CourseID: "c1"})
	require.NoError(t, err)
	_, err = uc.End(ctx)
	require.NoError(t, err)

	out, err := uc.Export(ctx, sessiondto.ExportInput{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Notes)

	note, err := os.ReadFile(filepath.Join(dir, "sessions", "2026", "03", "02", "100000-cs101-algorithms.md"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "duration_minutes: 75")
	assert.Contains(t, string(note), "1 hr 15 min")

	index, err := os.ReadFile(out.IndexPath)
	require.NoError(t, err)
	edited := strings.Replace(string(index), "# Study time\n", "# Study time\n\nMy own notes.\n", 1)
	require.NoError(t, os.WriteFile(out.IndexPath, []byte(edited), 0o644))

	_, err = uc.Export(ctx, sessiondto.ExportInput{Dir: dir})
	require.NoError(t, err)
	index, err = os.ReadFile(out.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(index), "My own notes.")
	assert.Equal(t, 1, strings.Count(string(index), sessionout.ManagedTotalsStart))
	assert.Contains(t, string(index), "[[CS101: Algorithms]]: 1 hr 15 min across 1 sessions")
}

func TestExportRequiresDir(t *testing.T) {
	t.Parallel()
	_, uc := newTracker(t, kv.NewMemory(), &fakeClock{values: []time.Time{t0}}, usecase.WithExporter(sessionout.NewMarkdownExporter()))
	_, err := uc.Export(context.Background(), sessiondto.ExportInput{})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
