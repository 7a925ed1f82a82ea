package in

import (
	"context"

	"studyhub/internal/modules/xp/dto"
)

type Usecase interface {
	Award(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
}
