package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/modules/notify/domain"
	"studyhub/internal/modules/notify/service"
)

type scriptedNotifier struct {
	mu          sync.Mutex
	permission  []permissionAnswer
	asks        int
	delivered   []domain.Notification
	notifyErr   error
	panicNotify bool
	block       chan struct{}
}

type permissionAnswer struct {
	granted bool
	err     error
}

func (n *scriptedNotifier) RequestPermission(context.Context) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.asks++
	if len(n.permission) == 0 {
		return true, nil
	}
	answer := n.permission[0]
	if len(n.permission) > 1 {
		n.permission = n.permission[1:]
	}
	return answer.granted, answer.err
}

func (n *scriptedNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if n.panicNotify {
		panic("backend exploded")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, msg)
	return n.notifyErr
}

func (n *scriptedNotifier) snapshot() (int, []domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.asks, append([]domain.Notification(nil), n.delivered...)
}

func TestDispatcherCachesGrantedPermission(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{}
	d := service.NewDispatcher(notifier, nil, time.Second)

	require.True(t, d.RequestPermission(context.Background()))
	require.True(t, d.RequestPermission(context.Background()))

	asks, _ := notifier.snapshot()
	assert.Equal(t, 1, asks)
}

func TestDispatcherRetriesPermissionAfterError(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{permission: []permissionAnswer{
		{err: errors.New("bus unavailable")},
		{granted: true},
	}}
	d := service.NewDispatcher(notifier, nil, time.Second)

	assert.False(t, d.RequestPermission(context.Background()))
	assert.True(t, d.RequestPermission(context.Background()))
	assert.True(t, d.RequestPermission(context.Background()))

	asks, _ := notifier.snapshot()
	assert.Equal(t, 2, asks)
}

func TestDispatcherSkipsDeliveryWhenDenied(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{permission: []permissionAnswer{{granted: false}}}
	d := service.NewDispatcher(notifier, nil, time.Second)

	d.Notify(context.Background(), "Reminder", "Read chapter 3")
	d.Wait()

	_, delivered := notifier.snapshot()
	assert.Empty(t, delivered)
}

func TestDispatcherDeliversAndSwallowsFailures(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{notifyErr: errors.New("backend down")}
	d := service.NewDispatcher(notifier, nil, time.Second)

	d.Notify(context.Background(), "Focus complete", "Time for a break!")
	d.Wait()

	_, delivered := notifier.snapshot()
	require.Len(t, delivered, 1)
	assert.Equal(t, "Focus complete", delivered[0].Title)
}

func TestDispatcherRecoversNotifierPanic(t *testing.T) {
	t.Parallel()

	d := service.NewDispatcher(&scriptedNotifier{panicNotify: true}, nil, time.Second)

	assert.NotPanics(t, func() {
		d.Notify(context.Background(), "Reminder", "Quiz")
		d.Wait()
	})
}

func TestDispatcherNotifyDoesNotBlockCaller(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{block: make(chan struct{})}
	d := service.NewDispatcher(notifier, nil, time.Second)

	returned := make(chan struct{})
	go func() {
		d.Notify(context.Background(), "Reminder", "Essay due")
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatalf("notify blocked the caller")
	}
	close(notifier.block)
	d.Wait()

	_, delivered := notifier.snapshot()
	assert.Len(t, delivered, 1)
}

func TestDispatcherIgnoresEmptyTitle(t *testing.T) {
	t.Parallel()

	notifier := &scriptedNotifier{}
	d := service.NewDispatcher(notifier, nil, time.Second)

	d.Notify(context.Background(), "  ", "body")
	d.Wait()

	asks, delivered := notifier.snapshot()
	assert.Zero(t, asks)
	assert.Empty(t, delivered)
}
