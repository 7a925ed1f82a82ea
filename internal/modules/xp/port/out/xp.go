package out

import (
	"context"

	"studyhub/internal/modules/xp/domain"
)

type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}

// SessionCounter feeds the session-count badge predicates.
type SessionCounter interface {
	Count(ctx context.Context) int
}
