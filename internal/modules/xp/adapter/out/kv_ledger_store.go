package out

import (
	"context"

	"studyhub/internal/modules/xp/domain"
	xpout "studyhub/internal/modules/xp/port/out"
	"studyhub/internal/platform/kv"
)

type KVLedgerStore struct {
	store kv.Store
}

func NewKVLedgerStore(store kv.Store) xpout.LedgerStore {
	return &KVLedgerStore{store: store}
}

func (s *KVLedgerStore) Load(ctx context.Context) (domain.Ledger, error) {
	ledger := domain.Ledger{}
	if _, err := s.store.Get(ctx, kv.KeyExperience, &ledger); err != nil {
		return domain.Ledger{}, err
	}
	if ledger.TotalXP < 0 {
		ledger.TotalXP = 0
	}
	return ledger, nil
}

func (s *KVLedgerStore) Save(ctx context.Context, ledger domain.Ledger) error {
	return s.store.Put(ctx, kv.KeyExperience, ledger)
}
