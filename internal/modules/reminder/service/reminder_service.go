package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/reminder/domain"
	reminderout "studyhub/internal/modules/reminder/port/out"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/logging"
)

const pollJob = "reminder-poll"

type ReminderService struct {
	clock    clock.Clock
	idGen    id.Generator
	store    reminderout.ReminderStore
	notifier reminderout.Notifier
	logger   hclog.Logger

	mu        sync.Mutex
	reminders []domain.Reminder
}

func NewReminderService(clock clock.Clock, idGen id.Generator, store reminderout.ReminderStore, notifier reminderout.Notifier, logger hclog.Logger) *ReminderService {
	return &ReminderService{
		clock:    clock,
		idGen:    idGen,
		store:    store,
		notifier: notifier,
		logger:   logging.OrDiscard(logger).Named("reminder"),
	}
}

func (s *ReminderService) Load(ctx context.Context) error {
	reminders, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}
	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()
	return nil
}

// Add refuses a blank title or a zero due time with ok=false.
func (s *ReminderService) Add(ctx context.Context, reminder domain.Reminder) (domain.Reminder, bool, error) {
	reminder.Title = strings.TrimSpace(reminder.Title)
	reminder.FiredAt = nil
	if !reminder.Valid() {
		return domain.Reminder{}, false, nil
	}
	reminder.ID = s.idGen.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, reminder)
	return reminder, true, s.persistLocked(ctx)
}

// Delete removes by id. An unknown id changes nothing.
func (s *ReminderService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, reminder := range s.reminders {
		if reminder.ID == id {
			s.reminders = append(s.reminders[:i:i], s.reminders[i+1:]...)
			return true, s.persistLocked(ctx)
		}
	}
	return false, nil
}

// List returns reminders ordered by due time.
func (s *ReminderService) List() []domain.Reminder {
	s.mu.Lock()
	out := append([]domain.Reminder(nil), s.reminders...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

// Poll notifies every reminder due in (now-Window, now] that has not fired
// for its current due time yet.
func (s *ReminderService) Poll(ctx context.Context) ([]domain.Reminder, error) {
	s.mu.Lock()
	now := s.clock.Now()
	var fired []domain.Reminder
	for i := range s.reminders {
		r := &s.reminders[i]
		if !r.DueWithin(now) || r.Fired() {
			continue
		}
		at := now
		r.FiredAt = &at
		fired = append(fired, *r)
	}
	var err error
	if len(fired) > 0 {
		err = s.persistLocked(ctx)
	}
	s.mu.Unlock()

	for _, r := range fired {
		s.logger.Debug("reminder due", "reminder", r.ID, "due", r.DueAt)
		if s.notifier != nil {
			s.notifier.Notify(ctx, domain.NotificationTitle, r.Title)
		}
	}
	return fired, err
}

// Watch registers the periodic poll with ticker and returns its handle.
func (s *ReminderService) Watch(ticker reminderout.Ticker) reminderout.Stopper {
	return ticker.Every(pollJob, domain.PollPeriod, func(ctx context.Context) {
		if _, err := s.Poll(ctx); err != nil {
			s.logger.Warn("reminder poll not persisted", "error", err)
		}
	})
}

func (s *ReminderService) Now() time.Time {
	return s.clock.Now()
}

func (s *ReminderService) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.reminders); err != nil {
		s.logger.Warn("reminders not persisted", "count", len(s.reminders), "error", err)
		return fmt.Errorf("%w: reminders: %v", apperrors.ErrPersist, err)
	}
	return nil
}
