package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseout "studyhub/internal/modules/course/adapter/out"
	"studyhub/internal/modules/course/dto"
	"studyhub/internal/modules/course/service"
	"studyhub/internal/modules/course/usecase"
	sessionout "studyhub/internal/modules/session/adapter/out"
	sessiondto "studyhub/internal/modules/session/dto"
	sessionservice "studyhub/internal/modules/session/service"
	sessionusecase "studyhub/internal/modules/session/usecase"
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

type seqID struct {
	prefix string
	n      int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestAddRefusesBlankFieldsAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	svc := service.NewCourseService(&fakeClock{values: []time.Time{t0}}, &seqID{prefix: "c"}, courseout.NewKVCourseStore(store), nil)
	uc := usecase.NewInteractor(svc, nil)

	_, ok, err := uc.Add(ctx, dto.AddInput{Code: "CS101", Topic: "  "})
	require.NoError(t, err)
	assert.False(t, ok)

	added, ok, err := uc.Add(ctx, dto.AddInput{Code: " CS101 ", Topic: "Algorithms"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "CS101", added.Code)
	assert.Equal(t, "CS101: Algorithms", added.Label)
	assert.Equal(t, "0 min", added.TotalLabel)

	reloaded := service.NewCourseService(&fakeClock{values: []time.Time{t0}}, &seqID{prefix: "c"}, courseout.NewKVCourseStore(store), nil)
	require.NoError(t, reloaded.Load(ctx))
	courses := reloaded.List()
	require.Len(t, courses, 1)
	assert.Equal(t, added.ID, courses[0].ID)
}

func TestDeleteCascadesToSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	clk := &fakeClock{values: []time.Time{
		t0,                       // course a
		t0,                       // course b
		t0,                       // session on a
		t0.Add(10 * time.Minute), // end
		t0.Add(11 * time.Minute), // session on a
		t0.Add(21 * time.Minute), // end
		t0.Add(22 * time.Minute), // session on a
		t0.Add(32 * time.Minute), // end
		t0.Add(33 * time.Minute), // session on b
		t0.Add(43 * time.Minute), // end
		t0.Add(44 * time.Minute), // active session on a
	}}
	ledger := courseout.NewSessionLedgerAdapter()
	courseSvc := service.NewCourseService(clk, &seqID{prefix: "c"}, courseout.NewKVCourseStore(store), nil)
	courses := usecase.NewInteractor(courseSvc, ledger)
	sessionSvc := sessionservice.NewSessionService(clk, &seqID{prefix: "s"}, sessionout.NewKVSessionLog(store), sessionout.NewKVActiveSessionStore(store), nil)
	sessions := sessionusecase.NewInteractor(sessionSvc, sessionout.NewCourseCatalogAdapter(courses))
	ledger.Bind(sessions)

	a, _, err := courses.Add(ctx, dto.AddInput{Code: "CS101", Topic: "Algorithms"})
	require.NoError(t, err)
	b, _, err := courses.Add(ctx, dto.AddInput{Code: "HIS210", Topic: "Modern Europe"})
	require.NoError(t, err)

	for _, id := range []string{a.ID, a.ID, a.ID, b.ID} {
		_, err := sessions.Start(ctx, sessiondto.StartInput{CourseID: id})
		require.NoError(t, err)
		_, err = sessions.End(ctx)
		require.NoError(t, err)
	}
	_, err = sessions.Start(ctx, sessiondto.StartInput{CourseID: a.ID})
	require.NoError(t, err)

	require.Len(t, sessions.Recent(ctx, sessiondto.RecentInput{}), 4)
	listed, err := courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 30, listed[0].TotalMinutes)
	assert.Equal(t, 10, listed[1].TotalMinutes)

	out, err := courses.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, out.Deleted)

	_, ok := courses.Get(ctx, a.ID)
	assert.False(t, ok)
	_, active := sessions.Active(ctx)
	assert.False(t, active)
	assert.Zero(t, sessions.TotalMinutes(ctx, a.ID))
	assert.Equal(t, 10, sessions.TotalMinutes(ctx, b.ID))
	recent := sessions.Recent(ctx, sessiondto.RecentInput{})
	require.Len(t, recent, 1)
	assert.Equal(t, b.ID, recent[0].CourseID)

	reloaded := sessionservice.NewSessionService(clk, &seqID{prefix: "s"}, sessionout.NewKVSessionLog(store), sessionout.NewKVActiveSessionStore(store), nil)
	require.NoError(t, reloaded.Load(ctx))
	_, active = reloaded.Active()
	assert.False(t, active)
	assert.Zero(t, reloaded.TotalDuration(a.ID))
	require.Equal(t, 1, reloaded.Count())
	assert.Equal(t, b.ID, reloaded.Completed()[0].CourseID)

	again, err := courses.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, again.Deleted)
}

func TestShuffleUsesPicker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewCourseService(&fakeClock{values: []time.Time{t0}}, &seqID{prefix: "c"}, courseout.NewKVCourseStore(kv.NewMemory()), nil).
		WithPicker(func(n int) int { return n - 1 })
	uc := usecase.NewInteractor(svc, nil)

	_, ok := uc.Shuffle(ctx)
	assert.False(t, ok, "empty catalog has nothing to pick")

	for _, code := range []string{"A1", "B2", "C3"} {
		_, _, err := uc.Add(ctx, dto.AddInput{Code: code, Topic: "Topic " + code})
		require.NoError(t, err)
	}
	picked, ok := uc.Shuffle(ctx)
	require.True(t, ok)
	assert.Equal(t, "C3", picked.Code)
}
