package dto

import "time"

type AddInput struct {
	Code  string
	Topic string
}

type CourseOutput struct {
	ID           string
	Code         string
	Topic        string
	Label        string
	CreatedAt    time.Time
	TotalMinutes int
	TotalLabel   string
}

type DeleteOutput struct {
	Deleted bool
}
