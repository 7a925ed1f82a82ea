package in

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/modules/reminder/dto"
	reminderin "studyhub/internal/modules/reminder/port/in"
)

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, title string, due time.Time) (dto.ReminderOutput, bool, error) {
	return h.usecase.Add(ctx, dto.AddInput{Title: title, DueAt: due})
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) List(ctx context.Context) []dto.ReminderOutput {
	return h.usecase.List(ctx)
}

// ParseDue accepts an absolute time in one of dueLayouts, interpreted in
// loc when it carries no offset, or a relative "+90s" / "+1h30m" offset from now.
func ParseDue(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("due time is empty")
	}
	if strings.HasPrefix(raw, "+") {
		offset, err := time.ParseDuration(strings.TrimPrefix(raw, "+"))
		if err != nil {
			return time.Time{}, fmt.Errorf("parse relative due %q: %w", raw, err)
		}
		return now.Add(offset), nil
	}
	for _, layout := range dueLayouts {
		if due, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return due, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised due time %q (use RFC3339, \"2006-01-02 15:04\" or +duration)", raw)
}
