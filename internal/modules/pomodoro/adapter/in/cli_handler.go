package in

import (
	"context"

	"studyhub/internal/modules/pomodoro/dto"
	pomodoroin "studyhub/internal/modules/pomodoro/port/in"
)

type CLIHandler struct {
	usecase pomodoroin.Usecase
}

func NewCLIHandler(usecase pomodoroin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Skip(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) Switch(ctx context.Context, phase string) (dto.StatusOutput, bool, error) {
	return h.usecase.SwitchPhase(ctx, dto.SwitchInput{Phase: phase})
}

func (h CLIHandler) Configure(ctx context.Context, work, brk *int) (dto.StatusOutput, error) {
	return h.usecase.Configure(ctx, dto.ConfigureInput{WorkMinutes: work, BreakMinutes: brk})
}
