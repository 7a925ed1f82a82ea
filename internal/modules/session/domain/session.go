package domain

import (
	"math"
	"time"
)

const (
	SchemaVersion      = 1
	UnknownCourseLabel = "Unknown Course"
	DefaultRecentLimit = 5
)

// StudySession is one block of study against a course. EndTime stays nil
// while the session is active.
type StudySession struct {
	ID              string     `json:"id"`
	CourseID        string     `json:"courseId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationMinutes int        `json:"duration"`
}

func (s StudySession) Active() bool {
	return s.EndTime == nil
}

// Complete stamps the end time and the rounded duration.
func (s StudySession) Complete(end time.Time) StudySession {
	s.EndTime = &end
	s.DurationMinutes = DurationMinutes(s.StartTime, end)
	return s
}

// DurationMinutes rounds the elapsed time to the nearest minute, half up.
// A clock that moved backwards yields zero.
func DurationMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(elapsed.Minutes()))
}

// CourseTotal is the aggregate written to the export index.
type CourseTotal struct {
	CourseID string
	Label    string
	Minutes  int
	Sessions int
}

// SessionNote is a completed session resolved for export.
type SessionNote struct {
	Session     StudySession
	CourseLabel string
}
