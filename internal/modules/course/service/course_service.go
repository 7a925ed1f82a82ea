package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/course/domain"
	courseout "studyhub/internal/modules/course/port/out"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/logging"
)

type CourseService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  courseout.CourseStore
	logger hclog.Logger
	pick   func(n int) int

	mu      sync.Mutex
	courses []domain.Course
}

func NewCourseService(clock clock.Clock, idGen id.Generator, store courseout.CourseStore, logger hclog.Logger) *CourseService {
	return &CourseService{
		clock:  clock,
		idGen:  idGen,
		store:  store,
		logger: logging.OrDiscard(logger).Named("course"),
		pick:   rand.IntN,
	}
}

// WithPicker replaces the random index source used by Shuffle.
func (s *CourseService) WithPicker(pick func(n int) int) *CourseService {
	s.pick = pick
	return s
}

func (s *CourseService) Load(ctx context.Context) error {
	courses, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	s.mu.Lock()
	s.courses = courses
	s.mu.Unlock()
	return nil
}

// Add appends a course. Blank code or topic is refused with ok=false.
func (s *CourseService) Add(ctx context.Context, code, topic string) (domain.Course, bool, error) {
	course := domain.Course{
		ID:        s.idGen.New(),
		Code:      strings.TrimSpace(code),
		Topic:     strings.TrimSpace(topic),
		CreatedAt: s.clock.Now(),
	}
	if !course.Valid() {
		return domain.Course{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append(s.courses, course)
	return course, true, s.persistLocked(ctx)
}

func (s *CourseService) List() []domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Course(nil), s.courses...)
}

func (s *CourseService) Get(id string) (domain.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, course := range s.courses {
		if course.ID == id {
			return course, true
		}
	}
	return domain.Course{}, false
}

// Delete removes the course and reports whether it existed.
func (s *CourseService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.courses[:0:0]
	for _, course := range s.courses {
		if course.ID != id {
			kept = append(kept, course)
		}
	}
	if len(kept) == len(s.courses) {
		return false, nil
	}
	s.courses = kept
	return true, s.persistLocked(ctx)
}

// Shuffle picks one course uniformly at random.
func (s *CourseService) Shuffle() (domain.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.courses) == 0 {
		return domain.Course{}, false
	}
	return s.courses[s.pick(len(s.courses))], true
}

func (s *CourseService) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.courses); err != nil {
		s.logger.Warn("courses not persisted", "count", len(s.courses), "error", err)
		return fmt.Errorf("%w: courses: %v", apperrors.ErrPersist, err)
	}
	return nil
}
