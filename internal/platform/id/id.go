package id

import "github.com/oklog/ulid/v2"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// ULID yields time-ordered identifiers so persisted sequences sort by creation.
type ULID struct{}

func (ULID) New() string {
	return ulid.Make().String()
}
