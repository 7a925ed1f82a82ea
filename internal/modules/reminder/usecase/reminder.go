package usecase

import (
	"context"
	"time"

	"studyhub/internal/modules/reminder/domain"
	"studyhub/internal/modules/reminder/dto"
	reminderin "studyhub/internal/modules/reminder/port/in"
	reminderout "studyhub/internal/modules/reminder/port/out"
	"studyhub/internal/modules/reminder/service"
)

type Interactor struct {
	svc    *service.ReminderService
	ticker reminderout.Ticker
}

func NewInteractor(svc *service.ReminderService, ticker reminderout.Ticker) reminderin.Usecase {
	return &Interactor{svc: svc, ticker: ticker}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.ReminderOutput, bool, error) {
	reminder, ok, err := i.svc.Add(ctx, domain.Reminder{Title: input.Title, DueAt: input.DueAt})
	if !ok {
		return dto.ReminderOutput{}, false, err
	}
	return toOutput(reminder, i.svc.Now()), true, err
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) List(context.Context) []dto.ReminderOutput {
	now := i.svc.Now()
	reminders := i.svc.List()
	out := make([]dto.ReminderOutput, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, toOutput(reminder, now))
	}
	return out
}

func (i *Interactor) Poll(ctx context.Context) ([]dto.ReminderOutput, error) {
	fired, err := i.svc.Poll(ctx)
	now := i.svc.Now()
	out := make([]dto.ReminderOutput, 0, len(fired))
	for _, reminder := range fired {
		out = append(out, toOutput(reminder, now))
	}
	return out, err
}

func (i *Interactor) Watch() func() {
	if i.ticker == nil {
		return func() {}
	}
	return i.svc.Watch(i.ticker).Stop
}

func toOutput(reminder domain.Reminder, now time.Time) dto.ReminderOutput {
	return dto.ReminderOutput{
		ID:      reminder.ID,
		Title:   reminder.Title,
		DueAt:   reminder.DueAt,
		FiredAt: reminder.FiredAt,
		Overdue: !reminder.DueAt.After(now),
	}
}
