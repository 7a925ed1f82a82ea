package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/session/domain"
	sessionout "studyhub/internal/modules/session/port/out"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/logging"
)

// SessionService owns the single active slot and the completed-session log.
type SessionService struct {
	clock       clock.Clock
	idGen       id.Generator
	log         sessionout.SessionLog
	activeStore sessionout.ActiveSessionStore
	logger      hclog.Logger

	mu       sync.Mutex
	sessions []domain.StudySession
	active   *domain.StudySession
}

func NewSessionService(clock clock.Clock, idGen id.Generator, log sessionout.SessionLog, activeStore sessionout.ActiveSessionStore, logger hclog.Logger) *SessionService {
	return &SessionService{
		clock:       clock,
		idGen:       idGen,
		log:         log,
		activeStore: activeStore,
		logger:      logging.OrDiscard(logger).Named("session"),
	}
}

func (s *SessionService) Load(ctx context.Context) error {
	sessions, err := s.log.Load(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	active, err := s.activeStore.LoadActive(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNoActiveSession):
	default:
		return fmt.Errorf("load active session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sessions
	s.active = nil
	if err == nil {
		s.active = &active
	}
	return nil
}

// Start opens a session for courseID. An already active session is ended
// first and returned as ended. An empty course id is refused.
func (s *SessionService) Start(ctx context.Context, courseID string) (started domain.StudySession, ended *domain.StudySession, ok bool, err error) {
	if courseID == "" {
		return domain.StudySession{}, nil, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.active != nil {
		done, endErr := s.endLocked(ctx)
		ended = &done
		errs = append(errs, endErr)
	}
	started = domain.StudySession{ID: s.idGen.New(), CourseID: courseID, StartTime: s.clock.Now()}
	s.active = &started
	if saveErr := s.activeStore.SaveActive(ctx, started); saveErr != nil {
		s.logger.Warn("active session not persisted", "session", started.ID, "error", saveErr)
		errs = append(errs, fmt.Errorf("%w: active session: %v", apperrors.ErrPersist, saveErr))
	}
	s.logger.Debug("session started", "session", started.ID, "course", courseID)
	return started, ended, true, errors.Join(errs...)
}

// End closes the active session. ok=false when nothing is active.
func (s *SessionService) End(ctx context.Context) (domain.StudySession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.StudySession{}, false, nil
	}
	done, err := s.endLocked(ctx)
	return done, true, err
}

func (s *SessionService) endLocked(ctx context.Context) (domain.StudySession, error) {
	done := s.active.Complete(s.clock.Now())
	s.sessions = append(s.sessions, done)
	s.active = nil
	s.logger.Debug("session ended", "session", done.ID, "minutes", done.DurationMinutes)

	var errs []error
	if err := s.log.Save(ctx, s.sessions); err != nil {
		errs = append(errs, fmt.Errorf("%w: sessions: %v", apperrors.ErrPersist, err))
	}
	if err := s.activeStore.ClearActive(ctx); err != nil {
		errs = append(errs, fmt.Errorf("%w: active session: %v", apperrors.ErrPersist, err))
	}
	if len(errs) > 0 {
		s.logger.Warn("ended session not fully persisted", "session", done.ID, "error", errors.Join(errs...))
	}
	return done, errors.Join(errs...)
}

// PurgeCourse drops every logged session for the course and discards the
// active one without accounting when it belongs to that course.
func (s *SessionService) PurgeCourse(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.StudySession, 0, len(s.sessions))
	for _, session := range s.sessions {
		if session.CourseID != courseID {
			kept = append(kept, session)
		}
	}
	var errs []error
	if len(kept) != len(s.sessions) {
		s.sessions = kept
		if err := s.log.Save(ctx, s.sessions); err != nil {
			errs = append(errs, fmt.Errorf("%w: sessions: %v", apperrors.ErrPersist, err))
		}
	}
	if s.active != nil && s.active.CourseID == courseID {
		s.active = nil
		if err := s.activeStore.ClearActive(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: active session: %v", apperrors.ErrPersist, err))
		}
	}
	return errors.Join(errs...)
}

func (s *SessionService) TotalDuration(courseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, session := range s.sessions {
		if session.CourseID == courseID {
			total += session.DurationMinutes
		}
	}
	return total
}

func (s *SessionService) Active() (domain.StudySession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.StudySession{}, false
	}
	return *s.active, true
}

// Recent returns up to n completed sessions, newest start first.
func (s *SessionService) Recent(n int) []domain.StudySession {
	if n <= 0 {
		n = domain.DefaultRecentLimit
	}
	all := s.Completed()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartTime.After(all[j].StartTime)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func (s *SessionService) Completed() []domain.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StudySession(nil), s.sessions...)
}

func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
