package dto

import "time"

type StatusOutput struct {
	Phase            string
	SecondsRemaining int
	Countdown        string
	WorkMinutes      int
	BreakMinutes     int
	Running          bool
	PhaseEndsAt      *time.Time
}

type SwitchInput struct {
	Phase string
}

// ConfigureInput leaves a duration untouched when its pointer is nil.
type ConfigureInput struct {
	WorkMinutes  *int
	BreakMinutes *int
}
