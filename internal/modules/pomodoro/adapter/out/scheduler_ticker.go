package out

import (
	"context"
	"time"

	pomodoroout "studyhub/internal/modules/pomodoro/port/out"
	"studyhub/internal/platform/scheduler"
)

type SchedulerTicker struct {
	scheduler *scheduler.Scheduler
}

func NewSchedulerTicker(s *scheduler.Scheduler) pomodoroout.Ticker {
	return &SchedulerTicker{scheduler: s}
}

func (t *SchedulerTicker) Every(name string, period time.Duration, fn func(ctx context.Context)) pomodoroout.Stopper {
	return t.scheduler.Every(name, period, fn)
}
