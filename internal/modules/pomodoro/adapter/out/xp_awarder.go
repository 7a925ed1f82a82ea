package out

import (
	"context"
	"errors"

	pomodoroout "studyhub/internal/modules/pomodoro/port/out"
	xpdto "studyhub/internal/modules/xp/dto"
	xpin "studyhub/internal/modules/xp/port/in"
)

type XPAwarderAdapter struct {
	xp xpin.Usecase
}

func NewXPAwarderAdapter(xp xpin.Usecase) pomodoroout.XPAwarder {
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
