// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts the current time so scheduled passes can be replayed.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
}
