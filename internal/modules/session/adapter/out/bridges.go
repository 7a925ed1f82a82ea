package out

import (
	"context"
	"errors"

	coursein "studyhub/internal/modules/course/port/in"
	sessionout "studyhub/internal/modules/session/port/out"
	xpdto "studyhub/internal/modules/xp/dto"
	xpin "studyhub/internal/modules/xp/port/in"
)

type CourseCatalogAdapter struct {
	courses coursein.Usecase
}

func NewCourseCatalogAdapter(courses coursein.Usecase) sessionout.CourseCatalog {
	return &CourseCatalogAdapter{courses: courses}
}

func (a *CourseCatalogAdapter) Lookup(ctx context.Context, courseID string) (string, bool) {
	course, ok := a.courses.Get(ctx, courseID)
	if !ok {
		return "", false
	}
	return course.Label, true
}

type XPAwarderAdapter struct {
	xp xpin.Usecase
}

func NewXPAwarderAdapter(xp xpin.Usecase) sessionout.XPAwarder {
	return &XPAwarderAdapter{xp: xp}
}

func (a *XPAwarderAdapter) Award(ctx context.Context, amount int) error {
	out, err := a.xp.Award(ctx, xpdto.AwardInput{Amount: amount})
	if err != nil {
		return err
	}
	if !out.Awarded {
		return errors.New("award refused")
	}
	return nil
}
