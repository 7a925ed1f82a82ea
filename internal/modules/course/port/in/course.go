package in

import (
	"context"

	"studyhub/internal/modules/course/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.CourseOutput, bool, error)
	List(ctx context.Context) ([]dto.CourseOutput, error)
	Get(ctx context.Context, id string) (dto.CourseOutput, bool)
	Delete(ctx context.Context, id string) (dto.DeleteOutput, error)
	Shuffle(ctx context.Context) (dto.CourseOutput, bool)
}
