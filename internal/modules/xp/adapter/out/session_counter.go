package out

import (
	"context"
	"sync"

	sessionin "studyhub/internal/modules/session/port/in"
	xpout "studyhub/internal/modules/xp/port/out"
)

// SessionCounterAdapter reads the session count for badge predicates. The
// session usecase is bound later since ending a session awards XP.
type SessionCounterAdapter struct {
	mu       sync.RWMutex
	sessions sessionin.Usecase
}

func NewSessionCounterAdapter() *SessionCounterAdapter {
	return &SessionCounterAdapter{}
}

var _ xpout.SessionCounter = (*SessionCounterAdapter)(nil)

func (a *SessionCounterAdapter) Bind(sessions sessionin.Usecase) {
	a.mu.Lock()
	a.sessions = sessions
	a.mu.Unlock()
}

func (a *SessionCounterAdapter) Count(ctx context.Context) int {
	a.mu.RLock()
	sessions := a.sessions
	a.mu.RUnlock()
	if sessions == nil {
		return 0
	}
	return sessions.Count(ctx)
}
