// Package clock is the time source of the domain services. Readings are UTC
// so persisted timestamps compare without zone conversion.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type Clock interface {
	Now() time.Time
}

// clockwork fakes drive services and the scheduler from one virtual clock in tests.
var _ Clock = clockwork.Clock(nil)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
