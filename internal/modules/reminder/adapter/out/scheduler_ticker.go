package out

import (
	"context"
	"time"

	reminderout "studyhub/internal/modules/reminder/port/out"
	"studyhub/internal/platform/scheduler"
)

type SchedulerTicker struct {
	scheduler *scheduler.Scheduler
}

func NewSchedulerTicker(s *scheduler.Scheduler) reminderout.Ticker {
	return &SchedulerTicker{scheduler: s}
}

func (t *SchedulerTicker) Every(name string, period time.Duration, fn func(ctx context.Context)) reminderout.Stopper {
	return t.scheduler.Every(name, period, fn)
}
