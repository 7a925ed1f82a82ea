package dto

import "time"

type StartInput struct {
	CourseID string
}

type SessionOutput struct {
	ID              string
	CourseID        string
	CourseLabel     string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	DurationLabel   string
}

type StartOutput struct {
	Started bool
	Session SessionOutput
	// Ended is set when starting closed a previously active session.
	Ended *SessionOutput
}

type EndOutput struct {
	Ended     bool
	Session   SessionOutput
	XPAwarded int
}

type RecentInput struct {
	Limit int
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Notes     int
	IndexPath string
}
