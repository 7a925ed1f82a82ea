package usecase

import (
	"context"

	"studyhub/internal/modules/notify/dto"
	notifyin "studyhub/internal/modules/notify/port/in"
	"studyhub/internal/modules/notify/service"
)

type Interactor struct {
	dispatcher *service.Dispatcher
	kind       string
}

func NewInteractor(dispatcher *service.Dispatcher, kind string) notifyin.Usecase {
	return &Interactor{dispatcher: dispatcher, kind: kind}
}

func (i *Interactor) RequestPermission(ctx context.Context) bool {
	return i.dispatcher.RequestPermission(ctx)
}

func (i *Interactor) Notify(ctx context.Context, title, body string) {
	i.dispatcher.Notify(ctx, title, body)
}

// Test sends a sample notification and waits for it so the caller can report the outcome.
func (i *Interactor) Test(ctx context.Context) dto.TestOutput {
	granted := i.dispatcher.RequestPermission(ctx)
	if granted {
		i.dispatcher.Notify(ctx, "studyhub", "Notifications are working.")
		i.dispatcher.Wait()
	}
	return dto.TestOutput{Notifier: i.kind, Granted: granted}
}
