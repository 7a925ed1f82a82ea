package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomodoroout "studyhub/internal/modules/pomodoro/adapter/out"
	"studyhub/internal/modules/pomodoro/dto"
	"studyhub/internal/modules/pomodoro/service"
	"studyhub/internal/modules/pomodoro/usecase"
	"studyhub/internal/platform/kv"
)

func TestConfigureAndSwitchThroughUsecase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine := service.NewEngine(clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
		pomodoroout.NewKVStateStore(kv.NewMemory()), service.Config{WorkMinutes: 25, BreakMinutes: 5})
	uc := usecase.NewInteractor(engine)

	status := uc.Status(ctx)
	assert.Equal(t, "work", status.Phase)
	assert.Equal(t, "25:00", status.Countdown)

	brk := 15
	status, err := uc.Configure(ctx, dto.ConfigureInput{BreakMinutes: &brk})
	require.NoError(t, err)
	assert.Equal(t, 25, status.WorkMinutes)
	assert.Equal(t, 15, status.BreakMinutes)

	status, changed, err := uc.SwitchPhase(ctx, dto.SwitchInput{Phase: " Break "})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "break", status.Phase)
	assert.Equal(t, "25:00", status.Countdown)

	_, changed, err = uc.SwitchPhase(ctx, dto.SwitchInput{Phase: "lunch"})
	require.NoError(t, err)
	assert.False(t, changed)

	status, err = uc.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, status.Running)
}
