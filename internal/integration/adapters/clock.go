package adapters

import (
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
)

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reading wall time in loc. Month and day
// boundaries throughout the ledger follow this location.
func NewSystemClock(loc *time.Location) adapter.Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

// Now returns the current time in the clock's location.
func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
