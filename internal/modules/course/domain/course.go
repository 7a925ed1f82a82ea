package domain

import (
	"strings"
	"time"
)

type Course struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether both the code and the topic carry text.
func (c Course) Valid() bool {
	return strings.TrimSpace(c.Code) != "" && strings.TrimSpace(c.Topic) != ""
}

// Label is the "CODE: Topic" form shown next to sessions.
func (c Course) Label() string {
	return c.Code + ": " + c.Topic
}
