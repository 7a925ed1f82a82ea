package domain

import (
	"strings"
	"time"
)

const (
	PollPeriod = 5 * time.Second
	// Window is wider than PollPeriod so every due instant lands in at
	// least one poll window while the process runs.
	Window = 6 * time.Second

	NotificationTitle = "Reminder"
)

type Reminder struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueAt   time.Time  `json:"dueAt"`
	FiredAt *time.Time `json:"firedAt,omitempty"`
}

func (r Reminder) Valid() bool {
	return strings.TrimSpace(r.Title) != "" && !r.DueAt.IsZero()
}

// DueWithin reports whether DueAt falls in (now-Window, now].
func (r Reminder) DueWithin(now time.Time) bool {
	return !r.DueAt.After(now) && r.DueAt.After(now.Add(-Window))
}

// Fired reports whether the current due time was already delivered.
func (r Reminder) Fired() bool {
	return r.FiredAt != nil && !r.FiredAt.Before(r.DueAt)
}
