package in

import (
	"context"

	sessiondto "studyhub/internal/modules/session/dto"
	sessionin "studyhub/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, courseID string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{CourseID: courseID})
}

func (h CLIHandler) End(ctx context.Context) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Active(ctx context.Context) (sessiondto.SessionOutput, bool) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Recent(ctx context.Context, limit int) []sessiondto.SessionOutput {
	return h.usecase.Recent(ctx, sessiondto.RecentInput{Limit: limit})
}

func (h CLIHandler) Export(ctx context.Context, dir string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{Dir: dir})
}
