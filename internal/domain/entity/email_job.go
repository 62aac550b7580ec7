package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the lifecycle state of a queued operator email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template that renders an email body.
type EmailTemplateType string

const (
	TemplateJobReport EmailTemplateType = "job_report"
)

// DefaultEmailAttempts is how many sends an operator email gets before it is abandoned.
const DefaultEmailAttempts = 3

// EmailJob is an operator email waiting in the outbound queue. DedupeKey is
// unique across the queue so the same report is never enqueued twice.
type EmailJob struct {
	ID             uuid.UUID
	DedupeKey      string
	TemplateType   EmailTemplateType
	RecipientEmail string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ClaimedAt      *time.Time
	ProcessedAt    *time.Time
}

// NewJobReportEmail builds the pending report email for one scheduler run.
func NewJobReportEmail(run *JobRun, recipient, subject string, data map[string]interface{}, now time.Time) *EmailJob {
	return &EmailJob{
		ID:             uuid.New(),
		DedupeKey:      JobReportDedupeKey(run.ID),
		TemplateType:   TemplateJobReport,
		RecipientEmail: recipient,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// JobReportDedupeKey is the queue key of the report for run runID.
func JobReportDedupeKey(runID uuid.UUID) string {
	return string(TemplateJobReport) + ":" + runID.String()
}

// Claim moves a due email to processing on behalf of a worker.
func (e *EmailJob) Claim(now time.Time) {
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &now
}

// MarkSent records the provider id of a delivered email.
func (e *EmailJob) MarkSent(resendID string, now time.Time) {
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.ClaimedAt = nil
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. Permanent failures and exhausted
// attempts end the email; anything else goes back to pending after backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()
	e.ClaimedAt = nil

	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(emailBackoff(e.Attempts))
}

// CanRetry returns true while attempts remain.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// emailBackoff is 1m after the first failure and 5m after any later one.
func emailBackoff(attempts int) time.Duration {
	if attempts <= 1 {
		return time.Minute
	}
	return 5 * time.Minute
}
