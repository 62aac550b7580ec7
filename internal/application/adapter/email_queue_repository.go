package adapter

import (
	"context"
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
)

// EmailQueueRepository is the durable outbox for operator emails.
type EmailQueueRepository interface {
	// Enqueue stores job unless an email with the same dedupe key exists.
	// It reports whether the job was stored.
	Enqueue(ctx context.Context, job *entity.EmailJob) (bool, error)

	// ClaimDue moves up to limit pending emails scheduled at or before now to
	// processing and returns them, oldest first.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Save persists the state of a claimed email.
	Save(ctx context.Context, job *entity.EmailJob) error

	// ReleaseStale returns emails claimed before cutoff to pending.
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)

	// PurgeFinished removes sent and failed emails processed before cutoff.
	PurgeFinished(ctx context.Context, cutoff time.Time) (int64, error)
}
