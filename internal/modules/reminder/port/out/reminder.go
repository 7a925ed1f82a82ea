package out

import (
	"context"
	"time"

	"studyhub/internal/modules/reminder/domain"
)

type ReminderStore interface {
	Load(ctx context.Context) ([]domain.Reminder, error)
	Save(ctx context.Context, reminders []domain.Reminder) error
}

type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

type Stopper interface {
	Stop()
}

type Ticker interface {
	Every(name string, period time.Duration, fn func(ctx context.Context)) Stopper
}
