package service

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/notify/domain"
	notifyout "studyhub/internal/modules/notify/port/out"
	"studyhub/internal/platform/logging"
)

const DefaultTimeout = 5 * time.Second

// Dispatcher adapts a Notifier into a fire-and-forget gateway. Permission is
// asked at most once successfully and then cached.
type Dispatcher struct {
	notifier notifyout.Notifier
	logger   hclog.Logger
	timeout  time.Duration

	mu      sync.Mutex
	asked   bool
	granted bool

	inflight sync.WaitGroup
}

func NewDispatcher(notifier notifyout.Notifier, logger hclog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{notifier: notifier, logger: logging.OrDiscard(logger).Named("notify"), timeout: timeout}
}

func (d *Dispatcher) RequestPermission(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.asked {
		return d.granted
	}
	if d.notifier == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	granted, err := d.safeRequest(ctx)
	if err != nil {
		// Not cached, so a later call can ask again.
		d.logger.Debug("notification permission unavailable", "error", err)
		return false
	}
	d.asked = true
	d.granted = granted
	d.logger.Debug("notification permission", "granted", granted)
	return granted
}

// Notify dispatches on its own goroutine and returns immediately.
func (d *Dispatcher) Notify(ctx context.Context, title, body string) {
	n := domain.Notification{Title: title, Body: body}
	if !n.Valid() || d.notifier == nil {
		return
	}
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if !d.RequestPermission(callCtx) {
			return
		}
		if err := d.safeNotify(callCtx, n); err != nil {
			d.logger.Debug("notification dropped", "title", n.Title, "error", err)
		}
	}()
}

// Wait blocks until every dispatched notification has finished. The CLI
// calls it before exiting so short-lived commands do not drop messages.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

func (d *Dispatcher) safeRequest(ctx context.Context) (granted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notifier panicked", "op", "request_permission", "panic", r)
			granted, err = false, nil
		}
	}()
	return d.notifier.RequestPermission(ctx)
}

func (d *Dispatcher) safeNotify(ctx context.Context, n domain.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notifier panicked", "op", "notify", "panic", r)
			err = nil
		}
	}()
	return d.notifier.Notify(ctx, n)
}
