package dto

import "time"

type AddInput struct {
	Title string
	DueAt time.Time
}

type ReminderOutput struct {
	ID      string
	Title   string
	DueAt   time.Time
	FiredAt *time.Time
	Overdue bool
}
