package usecase

import (
	"context"

	"studyhub/internal/modules/course/domain"
	"studyhub/internal/modules/course/dto"
	coursein "studyhub/internal/modules/course/port/in"
	courseout "studyhub/internal/modules/course/port/out"
	"studyhub/internal/modules/course/service"
	"studyhub/internal/platform/timefmt"
)

type Interactor struct {
	svc      *service.CourseService
	sessions courseout.SessionLedger
}

func NewInteractor(svc *service.CourseService, sessions courseout.SessionLedger) coursein.Usecase {
	return &Interactor{svc: svc, sessions: sessions}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.CourseOutput, bool, error) {
	course, ok, err := i.svc.Add(ctx, input.Code, input.Topic)
	if !ok {
		return dto.CourseOutput{}, false, err
	}
	return i.toOutput(ctx, course), true, err
}

func (i *Interactor) List(ctx context.Context) ([]dto.CourseOutput, error) {
	courses := i.svc.List()
	out := make([]dto.CourseOutput, 0, len(courses))
	for _, course := range courses {
		out = append(out, i.toOutput(ctx, course))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.CourseOutput, bool) {
	course, ok := i.svc.Get(id)
	if !ok {
		return dto.CourseOutput{}, false
	}
	return i.toOutput(ctx, course), true
}

// Delete removes the course, then every session recorded against it.
func (i *Interactor) Delete(ctx context.Context, id string) (dto.DeleteOutput, error) {
	deleted, err := i.svc.Delete(ctx, id)
	if !deleted {
		return dto.DeleteOutput{}, err
	}
	if i.sessions != nil {
		if purgeErr := i.sessions.PurgeCourse(ctx, id); purgeErr != nil && err == nil {
			err = purgeErr
		}
	}
	return dto.DeleteOutput{Deleted: true}, err
}

func (i *Interactor) Shuffle(ctx context.Context) (dto.CourseOutput, bool) {
	course, ok := i.svc.Shuffle()
	if !ok {
		return dto.CourseOutput{}, false
	}
	return i.toOutput(ctx, course), true
}

func (i *Interactor) toOutput(ctx context.Context, course domain.Course) dto.CourseOutput {
	total := 0
	if i.sessions != nil {
		total = i.sessions.TotalMinutes(ctx, course.ID)
	}
	return dto.CourseOutput{
		ID:           course.ID,
		Code:         course.Code,
		Topic:        course.Topic,
		Label:        course.Label(),
		CreatedAt:    course.CreatedAt,
		TotalMinutes: total,
		TotalLabel:   timefmt.Minutes(total),
	}
}
