package in

import (
	"context"

	"studyhub/internal/modules/pomodoro/dto"
)

type Usecase interface {
	Status(ctx context.Context) dto.StatusOutput
	Start(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Toggle(ctx context.Context) (dto.StatusOutput, error)
	Reset(ctx context.Context) (dto.StatusOutput, error)
	Skip(ctx context.Context) (dto.StatusOutput, error)
	SwitchPhase(ctx context.Context, input dto.SwitchInput) (dto.StatusOutput, bool, error)
	Configure(ctx context.Context, input dto.ConfigureInput) (dto.StatusOutput, error)
	OnWorkComplete(fn func()) (cancel func())
}
