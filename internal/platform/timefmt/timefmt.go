// Package timefmt renders study durations for the CLI and TUI.
package timefmt

import (
	"fmt"
	"time"
)

// Minutes formats whole minutes as "N hr M min", dropping a zero part.
func Minutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
}

// Countdown formats seconds as MM:SS.
func Countdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Elapsed formats a running duration as H:MM:SS.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
