package in

import (
	"context"

	"studyhub/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context) (dto.EndOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, bool)
	Recent(ctx context.Context, input dto.RecentInput) []dto.SessionOutput
	TotalMinutes(ctx context.Context, courseID string) int
	PurgeCourse(ctx context.Context, courseID string) error
	Count(ctx context.Context) int
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
