package out

import (
	"context"

	"studyhub/internal/modules/notify/domain"
	notifyout "studyhub/internal/modules/notify/port/out"
)

// NoopNotifier models a host without any notification capability.
type NoopNotifier struct{}

func NewNoopNotifier() notifyout.Notifier {
	return NoopNotifier{}
}

func (NoopNotifier) RequestPermission(context.Context) (bool, error) { return false, nil }

func (NoopNotifier) Notify(context.Context, domain.Notification) error { return nil }
