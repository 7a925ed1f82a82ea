package bootstrap_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/bootstrap"
	"studyhub/internal/platform/config"
)

func newConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg.Notifier.Kind = config.NotifierNone
	cfg.LogLevel = "error"
	return cfg
}

func TestOneShotStatePersistsAcrossProcesses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := newConfig(t)

	app, err := bootstrap.New(ctx, cfg, bootstrap.ModeOneShot)
	require.NoError(t, err)
	course, ok, err := app.CourseCLI.Add(ctx, "CS101", "Algorithms")
	require.NoError(t, err)
	require.True(t, ok)
	started, err := app.SessionCLI.Start(ctx, course.ID)
	require.NoError(t, err)
	require.True(t, started.Started)
	_, err = app.TimerCLI.Start(ctx)
	require.NoError(t, err)
	assert.Zero(t, app.Scheduler.Len(), "one-shot commands never tick")
	require.NoError(t, app.Close())

	app, err = bootstrap.New(ctx, cfg, bootstrap.ModeOneShot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	active, ok := app.SessionCLI.Active(ctx)
	require.True(t, ok, "the active session survives a restart")
	assert.Equal(t, "CS101: Algorithms", active.CourseLabel)
	assert.True(t, app.TimerCLI.Status(ctx).Running)

	ended, err := app.SessionCLI.End(ctx)
	require.NoError(t, err)
	require.True(t, ended.Ended)
	snap, err := app.XPCLI.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SessionCount)

	deleted, err := app.CourseCLI.Delete(ctx, course.ID)
	require.NoError(t, err)
	require.True(t, deleted.Deleted)
	assert.Empty(t, app.SessionCLI.Recent(ctx, 0), "deleting a course removes its sessions")
}

func TestHostedModeRegistersJobs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app, err := bootstrap.New(ctx, newConfig(t), bootstrap.ModeHosted)
	require.NoError(t, err)

	stop := app.Reminders.Watch()
	assert.Equal(t, 1, app.Scheduler.Len())
	_, err = app.TimerCLI.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, app.Scheduler.Len())

	stop()
	require.NoError(t, app.Close())
	assert.Zero(t, app.Scheduler.Len())
}

func TestTUIModeRoutesNotificationsToChannel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := newConfig(t)
	app, err := bootstrap.New(ctx, cfg, bootstrap.ModeTUI)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	out := app.NotifyCLI.Test(ctx)
	assert.True(t, out.Granted)
	assert.Equal(t, "tui", out.Notifier)

	select {
	case msg := <-app.Notifications():
		assert.Equal(t, "studyhub", msg.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification delivered")
	}
	_, err = os.Stat(cfg.LogPath)
	require.NoError(t, err, "the TUI logs to a file")
}
