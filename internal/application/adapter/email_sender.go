package adapter

import (
	"context"

	"github.com/spendsync/backend/internal/domain/entity"
)

// OutboundEmail is a rendered message ready for the provider.
type OutboundEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
	// Reference is sent as the X-Entity-Ref-ID header so mail clients keep
	// separate reports out of one thread.
	Reference string
}

// EmailSender delivers rendered mail and returns the provider message id.
type EmailSender interface {
	Send(ctx context.Context, email OutboundEmail) (string, error)
}

// EmailService queues operator reports for scheduler runs.
type EmailService interface {
	// QueueJobReport queues a summary of a run that had failures. Queueing
	// the same run twice is a no-op.
	QueueJobReport(ctx context.Context, run *entity.JobRun) error
}
