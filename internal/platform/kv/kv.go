// Package kv is the durable key/value layer every stateful module persists
// through. Values are stored as JSON documents.
package kv

import "context"

// Store reads and writes JSON-encoded values by key. Writes are synchronous:
// a nil error means the value is durable.
type Store interface {
	// Get decodes the value stored at key into dst and reports whether the key existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Logical keys shared by the modules.
const (
	KeyCourses       = "courses"
	KeySessions      = "studySessions"
	KeyActiveSession = "activeSession"
	KeyPomodoro      = "pomodoro"
	KeyReminders     = "reminders"
	KeyExperience    = "experience"
)
