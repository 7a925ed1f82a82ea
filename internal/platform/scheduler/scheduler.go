// Package scheduler runs periodic jobs on a single cooperative loop. Each
// job has its own ticker, but fired jobs execute one at a time on the
// goroutine that called Run, so a job never observes another job's
// half-applied mutation.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"

	"studyhub/internal/platform/logging"
)

// Func is a periodic job body. The context is the one passed to Run.
type Func func(ctx context.Context)

type Scheduler struct {
	clock  clockwork.Clock
	logger hclog.Logger
	fire   chan *job

	mu   sync.Mutex
	jobs map[*job]struct{}
}

type job struct {
	name    string
	fn      Func
	ticker  clockwork.Ticker
	done    chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

// Handle deregisters a job.
type Handle struct {
	s *Scheduler
	j *job
}

func New(clock clockwork.Clock, logger hclog.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:  clock,
		logger: logging.OrDiscard(logger).Named("scheduler"),
		fire:   make(chan *job),
		jobs:   map[*job]struct{}{},
	}
}

// Every registers fn to run each period until the returned handle is stopped.
func (s *Scheduler) Every(name string, period time.Duration, fn Func) *Handle {
	j := &job{
		name:   name,
		fn:     fn,
		ticker: s.clock.NewTicker(period),
		done:   make(chan struct{}),
	}
	s.mu.Lock()
	s.jobs[j] = struct{}{}
	s.mu.Unlock()
	go s.pump(j)
	s.logger.Debug("job registered", "job", name, "period", period)
	return &Handle{s: s, j: j}
}

// Stop deregisters the job. Once Stop returns, the loop never invokes it again.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.s.stop(h.j)
}

// Run executes fired jobs until ctx is cancelled, then stops every job.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.stopAll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case j := <-s.fire:
			if j.stopped.Load() {
				continue
			}
			s.invoke(ctx, j)
		}
	}
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Scheduler) pump(j *job) {
	for {
		select {
		case <-j.done:
			return
		case <-j.ticker.Chan():
			select {
			case s.fire <- j:
			case <-j.done:
				return
			}
		}
	}
}

func (s *Scheduler) invoke(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", j.name, "panic", r)
		}
	}()
	j.fn(ctx)
}

func (s *Scheduler) stop(j *job) {
	j.once.Do(func() {
		j.stopped.Store(true)
		j.ticker.Stop()
		close(j.done)
		s.mu.Lock()
		delete(s.jobs, j)
		s.mu.Unlock()
		s.logger.Debug("job stopped", "job", j.name)
	})
}

func (s *Scheduler) stopAll() {
	s.mu.Lock()
	jobs := make([]*job, 0, len(s.jobs))
	for j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.Unlock()
	for _, j := range jobs {
		s.stop(j)
	}
}
