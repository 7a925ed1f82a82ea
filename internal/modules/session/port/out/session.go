package out

import (
	"context"

	"studyhub/internal/modules/session/domain"
)

// SessionLog holds completed sessions only.
type SessionLog interface {
	Load(ctx context.Context) ([]domain.StudySession, error)
	Save(ctx context.Context, sessions []domain.StudySession) error
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.StudySession) error
	// LoadActive returns apperrors.ErrNoActiveSession when the slot is empty.
	LoadActive(ctx context.Context) (domain.StudySession, error)
	ClearActive(ctx context.Context) error
}

type CourseCatalog interface {
	Lookup(ctx context.Context, courseID string) (label string, ok bool)
}

type XPAwarder interface {
	Award(ctx context.Context, amount int) error
}

type ExportResult struct {
	Notes     []string
	IndexPath string
}

type NoteExporter interface {
	Export(ctx context.Context, dir string, notes []domain.SessionNote, totals []domain.CourseTotal) (ExportResult, error)
}
