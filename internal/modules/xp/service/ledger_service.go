package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/xp/domain"
	xpout "studyhub/internal/modules/xp/port/out"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/logging"
)

type LedgerService struct {
	store  xpout.LedgerStore
	logger hclog.Logger

	mu     sync.Mutex
	ledger domain.Ledger
}

func NewLedgerService(store xpout.LedgerStore, logger hclog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logging.OrDiscard(logger).Named("xp")}
}

// Load rehydrates the total from the store.
func (s *LedgerService) Load(ctx context.Context) error {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load experience: %w", err)
	}
	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()
	return nil
}

// Award adds amount and persists, returning the totals before and after.
// Non-positive amounts, and amounts that would overflow the total, leave it
// untouched and report awarded=false. On a write failure the in-memory total
// keeps the award and the error wraps ErrPersist.
func (s *LedgerService) Award(ctx context.Context, amount int) (before, total int, awarded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.ledger.TotalXP
	if amount <= 0 {
		return before, before, false, nil
	}
	if amount > math.MaxInt-before {
		s.logger.Warn("award refused, total would overflow", "amount", amount, "total", before)
		return before, before, false, nil
	}
	s.ledger.TotalXP += amount
	if err := s.store.Save(ctx, s.ledger); err != nil {
		s.logger.Warn("experience not persisted", "total", s.ledger.TotalXP, "error", err)
		return before, s.ledger.TotalXP, true, fmt.Errorf("%w: experience: %v", apperrors.ErrPersist, err)
	}
	s.logger.Debug("xp awarded", "amount", amount, "total", s.ledger.TotalXP)
	return before, s.ledger.TotalXP, true, nil
}

func (s *LedgerService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TotalXP
}
