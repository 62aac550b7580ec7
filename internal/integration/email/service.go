// Package email queues and delivers operator emails through Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// maxReportedFailures caps the failure lines copied into one report.
const maxReportedFailures = 50

// Service queues operator reports about scheduler runs.
type Service struct {
	queue     adapter.EmailQueueRepository
	clock     adapter.Clock
	recipient string
}

// NewService creates a service that sends reports to recipient.
func NewService(queue adapter.EmailQueueRepository, clock adapter.Clock, recipient string) *Service {
	return &Service{
		queue:     queue,
		clock:     clock,
		recipient: recipient,
	}
}

func (s *Service) QueueJobReport(ctx context.Context, run *entity.JobRun) error {
	if s.recipient == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeNoOpsRecipient,
			"job report not queued",
			domainerror.ErrNoOpsRecipient,
		)
	}

	subject := fmt.Sprintf("[SpendSync] %s pass: %d of %d items failed", run.Job, run.Failed, run.Processed)
	job := entity.NewJobReportEmail(run, s.recipient, subject, jobReportData(run), s.clock.Now())

	queued, err := s.queue.Enqueue(ctx, job)
	if err != nil {
		return err
	}
	if !queued {
		slog.Debug("Job report already queued", "run_id", run.ID, "job", run.Job)
	}
	return nil
}

func jobReportData(run *entity.JobRun) map[string]interface{} {
	failures := make([]string, 0, run.Failed)
	for _, item := range run.Items {
		if !item.Failed() {
			continue
		}
		if len(failures) == maxReportedFailures {
			break
		}
		line := item.ItemID
		if item.Detail != "" {
			line += ": " + item.Detail
		}
		if item.Err != nil {
			line += ": " + item.Err.Error()
		}
		failures = append(failures, line)
	}

	return map[string]interface{}{
		"job":         string(run.Job),
		"run_id":      run.ID.String(),
		"started_at":  run.StartedAt.Format(time.RFC3339),
		"finished_at": run.FinishedAt.Format(time.RFC3339),
		"processed":   run.Processed,
		"succeeded":   run.Succeeded,
		"skipped":     run.Skipped,
		"failed":      run.Failed,
		"failures":    failures,
	}
}

var _ adapter.EmailService = (*Service)(nil)
