// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Notifier delivers a text message to a user by direct message.
type Notifier interface {
	// Send delivers text to userID. A nil error means the message was delivered.
	Send(ctx context.Context, userID, text string) error
}
