package out

import (
	"context"
	"sync"

	courseout "studyhub/internal/modules/course/port/out"
	sessionin "studyhub/internal/modules/session/port/in"
)

// SessionLedgerAdapter forwards to the session usecase. It is bound after
// construction because the session module also looks courses up.
type SessionLedgerAdapter struct {
	mu       sync.RWMutex
	sessions sessionin.Usecase
}

func NewSessionLedgerAdapter() *SessionLedgerAdapter {
	return &SessionLedgerAdapter{}
}

var _ courseout.SessionLedger = (*SessionLedgerAdapter)(nil)

func (a *SessionLedgerAdapter) Bind(sessions sessionin.Usecase) {
	a.mu.Lock()
	a.sessions = sessions
	a.mu.Unlock()
}

func (a *SessionLedgerAdapter) TotalMinutes(ctx context.Context, courseID string) int {
	sessions := a.target()
	if sessions == nil {
		return 0
	}
	return sessions.TotalMinutes(ctx, courseID)
}

func (a *SessionLedgerAdapter) PurgeCourse(ctx context.Context, courseID string) error {
	sessions := a.target()
	if sessions == nil {
		return nil
	}
	return sessions.PurgeCourse(ctx, courseID)
}

func (a *SessionLedgerAdapter) target() sessionin.Usecase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessions
}
