package usecase

import (
	"context"
	"errors"
	"strings"

	"studyhub/internal/modules/pomodoro/domain"
	"studyhub/internal/modules/pomodoro/dto"
	pomodoroin "studyhub/internal/modules/pomodoro/port/in"
	"studyhub/internal/modules/pomodoro/service"
	"studyhub/internal/platform/timefmt"
)

type Interactor struct {
	engine *service.Engine
}

func NewInteractor(engine *service.Engine) pomodoroin.Usecase {
	return &Interactor{engine: engine}
}

func (i *Interactor) Status(context.Context) dto.StatusOutput {
	return toStatus(i.engine.State())
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	err := i.engine.Start(ctx)
	return i.Status(ctx), err
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	err := i.engine.Pause(ctx)
	return i.Status(ctx), err
}

func (i *Interactor) Toggle(ctx context.Context) (dto.StatusOutput, error) {
	err := i.engine.Toggle(ctx)
	return i.Status(ctx), err
}

func (i *Interactor) Reset(ctx context.Context) (dto.StatusOutput, error) {
	err := i.engine.Reset(ctx)
	return i.Status(ctx), err
}

func (i *Interactor) Skip(ctx context.Context) (dto.StatusOutput, error) {
	err := i.engine.Skip(ctx)
	return i.Status(ctx), err
}

func (i *Interactor) SwitchPhase(ctx context.Context, input dto.SwitchInput) (dto.StatusOutput, bool, error) {
	phase, ok := domain.ParsePhase(strings.ToLower(strings.TrimSpace(input.Phase)))
	if !ok {
		return i.Status(ctx), false, nil
	}
	changed, err := i.engine.SwitchPhase(ctx, phase)
	return i.Status(ctx), changed, err
}

func (i *Interactor) Configure(ctx context.Context, input dto.ConfigureInput) (dto.StatusOutput, error) {
	var errs []error
	if input.WorkMinutes != nil {
		errs = append(errs, i.engine.SetWorkMinutes(ctx, *input.WorkMinutes))
	}
	if input.BreakMinutes != nil {
		errs = append(errs, i.engine.SetBreakMinutes(ctx, *input.BreakMinutes))
	}
	return i.Status(ctx), errors.Join(errs...)
}

func (i *Interactor) OnWorkComplete(fn func()) func() {
	return i.engine.OnWorkComplete(fn)
}

func toStatus(state domain.State) dto.StatusOutput {
	return dto.StatusOutput{
		Phase:            string(state.Phase),
		SecondsRemaining: state.SecondsRemaining,
		Countdown:        timefmt.Countdown(state.SecondsRemaining),
		WorkMinutes:      state.WorkMinutes,
		BreakMinutes:     state.BreakMinutes,
		Running:          state.Running,
		PhaseEndsAt:      state.PhaseEndsAt,
	}
}
