package in

import (
	"context"

	"studyhub/internal/modules/notify/dto"
	notifyin "studyhub/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Test(ctx context.Context) dto.TestOutput {
	return h.usecase.Test(ctx)
}
