package in

import (
	"context"

	"studyhub/internal/modules/reminder/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ReminderOutput, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) []dto.ReminderOutput
	Poll(ctx context.Context) ([]dto.ReminderOutput, error)
	// Watch starts the periodic poll. It is a no-op without a host loop.
	Watch() (stop func())
}
