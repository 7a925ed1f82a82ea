package out

import (
	"context"

	"studyhub/internal/modules/notify/domain"
)

// Notifier is a host notification capability. Implementations may fail;
// the dispatcher never lets those failures reach the core.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, n domain.Notification) error
}
