package in

import (
	"context"

	"studyhub/internal/modules/xp/dto"
	xpin "studyhub/internal/modules/xp/port/in"
)

type CLIHandler struct {
	usecase xpin.Usecase
}

func NewCLIHandler(usecase xpin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Award(ctx context.Context, amount int) (dto.AwardOutput, error) {
	return h.usecase.Award(ctx, dto.AwardInput{Amount: amount})
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}
