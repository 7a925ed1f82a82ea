package out

import (
	"context"

	"studyhub/internal/modules/course/domain"
)

type CourseStore interface {
	Load(ctx context.Context) ([]domain.Course, error)
	Save(ctx context.Context, courses []domain.Course) error
}

// SessionLedger is the view of the session log a course needs: totals for
// display and a cascade when the course is deleted.
type SessionLedger interface {
	TotalMinutes(ctx context.Context, courseID string) int
	PurgeCourse(ctx context.Context, courseID string) error
}
