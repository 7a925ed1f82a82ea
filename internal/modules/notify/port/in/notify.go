package in

import (
	"context"

	"studyhub/internal/modules/notify/dto"
)

// Gateway is what the timer and reminder modules depend on. Neither call
// returns an error and Notify never blocks the caller.
type Gateway interface {
	RequestPermission(ctx context.Context) bool
	Notify(ctx context.Context, title, body string)
}

type Usecase interface {
	Gateway
	Test(ctx context.Context) dto.TestOutput
}
