package in

import (
	"context"

	"studyhub/internal/modules/course/dto"
	coursein "studyhub/internal/modules/course/port/in"
)

type CLIHandler struct {
	usecase coursein.Usecase
}

func NewCLIHandler(usecase coursein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, code, topic string) (dto.CourseOutput, bool, error) {
	return h.usecase.Add(ctx, dto.AddInput{Code: code, Topic: topic})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.CourseOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (dto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Shuffle(ctx context.Context) (dto.CourseOutput, bool) {
	return h.usecase.Shuffle(ctx)
}
