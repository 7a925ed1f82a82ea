package usecase

import (
	"context"

	"studyhub/internal/modules/xp/domain"
	"studyhub/internal/modules/xp/dto"
	xpin "studyhub/internal/modules/xp/port/in"
	xpout "studyhub/internal/modules/xp/port/out"
	"studyhub/internal/modules/xp/service"
)

type Interactor struct {
	svc      *service.LedgerService
	sessions xpout.SessionCounter
}

func NewInteractor(svc *service.LedgerService, sessions xpout.SessionCounter) xpin.Usecase {
	return &Interactor{svc: svc, sessions: sessions}
}

func (i *Interactor) Award(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error) {
	before, total, awarded, err := i.svc.Award(ctx, input.Amount)
	return dto.AwardOutput{
		Awarded:   awarded,
		TotalXP:   total,
		Level:     domain.Level(total),
		LeveledUp: domain.Level(total) > domain.Level(before),
	}, err
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	total := i.svc.Total()
	sessions := 0
	if i.sessions != nil {
		sessions = i.sessions.Count(ctx)
	}
	earned := map[string]bool{}
	for _, b := range domain.Badges(total, sessions) {
		earned[b.ID] = true
	}
	badges := make([]dto.BadgeOutput, 0)
	for _, b := range domain.Catalog() {
		badges = append(badges, dto.BadgeOutput{ID: b.ID, Name: b.Name, Description: b.Description, Earned: earned[b.ID]})
	}
	return dto.SnapshotOutput{
		TotalXP:      total,
		Level:        domain.Level(total),
		LevelXP:      domain.Progress(total),
		SessionCount: sessions,
		Badges:       badges,
	}, nil
}
