package domain

import "strings"

type Notification struct {
	Title string
	Body  string
}

func (n Notification) Valid() bool {
	return strings.TrimSpace(n.Title) != ""
}
