package out

import (
	"context"

	"studyhub/internal/modules/reminder/domain"
	reminderout "studyhub/internal/modules/reminder/port/out"
	"studyhub/internal/platform/kv"
)

type KVReminderStore struct {
	store kv.Store
}

func NewKVReminderStore(store kv.Store) reminderout.ReminderStore {
	return &KVReminderStore{store: store}
}

func (s *KVReminderStore) Load(ctx context.Context) ([]domain.Reminder, error) {
	reminders := []domain.Reminder{}
	if _, err := s.store.Get(ctx, kv.KeyReminders, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (s *KVReminderStore) Save(ctx context.Context, reminders []domain.Reminder) error {
	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	return s.store.Put(ctx, kv.KeyReminders, reminders)
}
