package out

import (
	"context"

	"studyhub/internal/modules/pomodoro/domain"
	pomodoroout "studyhub/internal/modules/pomodoro/port/out"
	"studyhub/internal/platform/kv"
)

type KVStateStore struct {
	store kv.Store
}

func NewKVStateStore(store kv.Store) pomodoroout.StateStore {
	return &KVStateStore{store: store}
}

func (s *KVStateStore) Load(ctx context.Context) (domain.State, bool, error) {
	state := domain.State{}
	found, err := s.store.Get(ctx, kv.KeyPomodoro, &state)
	if err != nil {
		return domain.State{}, false, err
	}
	return state, found, nil
}

func (s *KVStateStore) Save(ctx context.Context, state domain.State) error {
	return s.store.Put(ctx, kv.KeyPomodoro, state)
}
