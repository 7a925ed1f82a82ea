package out

import (
	"context"
	"time"

	"studyhub/internal/modules/pomodoro/domain"
)

type StateStore interface {
	// Load reports found=false when no timer was ever saved.
	Load(ctx context.Context) (state domain.State, found bool, err error)
	Save(ctx context.Context, state domain.State) error
}

type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

type XPAwarder interface {
	Award(ctx context.Context, amount int) error
}

type Stopper interface {
	Stop()
}

// Ticker registers a periodic callback with the host loop.
type Ticker interface {
	Every(name string, period time.Duration, fn func(ctx context.Context)) Stopper
}
