package out

import (
	"context"

	"studyhub/internal/modules/course/domain"
	courseout "studyhub/internal/modules/course/port/out"
	"studyhub/internal/platform/kv"
)

type KVCourseStore struct {
	store kv.Store
}

func NewKVCourseStore(store kv.Store) courseout.CourseStore {
	return &KVCourseStore{store: store}
}

func (s *KVCourseStore) Load(ctx context.Context) ([]domain.Course, error) {
	courses := []domain.Course{}
	if _, err := s.store.Get(ctx, kv.KeyCourses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *KVCourseStore) Save(ctx context.Context, courses []domain.Course) error {
	if courses == nil {
		courses = []domain.Course{}
	}
	return s.store.Put(ctx, kv.KeyCourses, courses)
}
