package out

import (
	"context"

	"studyhub/internal/modules/notify/domain"
	"studyhub/internal/modules/notify/dto"
	notifyout "studyhub/internal/modules/notify/port/out"
)

// ChannelNotifier hands notifications to an in-process consumer such as the
// TUI status line. A full buffer drops the notification instead of blocking.
type ChannelNotifier struct {
	ch chan dto.Message
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 8
	}
	return &ChannelNotifier{ch: make(chan dto.Message, buffer)}
}

var _ notifyout.Notifier = (*ChannelNotifier)(nil)

func (n *ChannelNotifier) RequestPermission(context.Context) (bool, error) { return true, nil }

func (n *ChannelNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	select {
	case n.ch <- dto.Message{Title: msg.Title, Body: msg.Body}:
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}

func (n *ChannelNotifier) C() <-chan dto.Message {
	return n.ch
}
