package out

import (
	"context"
	"fmt"

	"studyhub/internal/modules/session/domain"
	sessionout "studyhub/internal/modules/session/port/out"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/kv"
)

type KVSessionLog struct {
	store kv.Store
}

func NewKVSessionLog(store kv.Store) sessionout.SessionLog {
	return &KVSessionLog{store: store}
}

func (s *KVSessionLog) Load(ctx context.Context) ([]domain.StudySession, error) {
	sessions := []domain.StudySession{}
	if _, err := s.store.Get(ctx, kv.KeySessions, &sessions); err != nil {
		return nil, err
	}
	// Only completed sessions belong in the log.
	completed := sessions[:0]
	for _, session := range sessions {
		if !session.Active() {
			completed = append(completed, session)
		}
	}
	return completed, nil
}

func (s *KVSessionLog) Save(ctx context.Context, sessions []domain.StudySession) error {
	if sessions == nil {
		sessions = []domain.StudySession{}
	}
	return s.store.Put(ctx, kv.KeySessions, sessions)
}

type KVActiveSessionStore struct {
	store kv.Store
}

func NewKVActiveSessionStore(store kv.Store) sessionout.ActiveSessionStore {
	return &KVActiveSessionStore{store: store}
}

func (s *KVActiveSessionStore) SaveActive(ctx context.Context, session domain.StudySession) error {
	return s.store.Put(ctx, kv.KeyActiveSession, session)
}

func (s *KVActiveSessionStore) LoadActive(ctx context.Context) (domain.StudySession, error) {
	active := domain.StudySession{}
	found, err := s.store.Get(ctx, kv.KeyActiveSession, &active)
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("read active session: %w", err)
	}
	if !found || active.ID == "" || !active.Active() {
		return domain.StudySession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *KVActiveSessionStore) ClearActive(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyActiveSession)
}
