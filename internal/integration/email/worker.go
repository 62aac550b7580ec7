package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/email/templates"
)

// WorkerConfig tunes the outbox worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// ClaimTimeout is how long an email may stay claimed before another
	// poll hands it out again.
	ClaimTimeout time.Duration
	// Retention is how long finished emails are kept.
	Retention time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		ClaimTimeout: 10 * time.Minute,
		Retention:    7 * 24 * time.Hour,
	}
}

// Worker drains the operator email outbox through an EmailSender.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	clock    adapter.Clock
	config   WorkerConfig
}

func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, clock adapter.Clock, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.ClaimTimeout <= 0 {
		config.ClaimTimeout = defaults.ClaimTimeout
	}
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		clock:    clock,
		config:   config,
	}
}

// Start polls the outbox until ctx is cancelled. Housekeeping runs once at
// start and then hourly.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	poll := time.NewTicker(w.config.PollInterval)
	defer poll.Stop()
	housekeeping := time.NewTicker(time.Hour)
	defer housekeeping.Stop()

	w.Housekeep(ctx)
	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-poll.C:
			w.ProcessNow(ctx)
		case <-housekeeping.C:
			w.Housekeep(ctx)
		}
	}
}

// ProcessNow claims and sends one batch of due emails. It returns the
// number of emails handed to the sender successfully.
func (w *Worker) ProcessNow(ctx context.Context) int {
	jobs, err := w.queue.ClaimDue(ctx, w.clock.Now(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to claim due emails", "error", err)
		return 0
	}

	sent := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			// Unsent claims go back to pending after ClaimTimeout.
			break
		}
		if w.deliver(ctx, job) {
			sent++
		}
	}
	return sent
}

// Housekeep requeues emails whose claim expired and purges old finished ones.
func (w *Worker) Housekeep(ctx context.Context) {
	now := w.clock.Now()

	released, err := w.queue.ReleaseStale(ctx, now.Add(-w.config.ClaimTimeout))
	if err != nil {
		slog.Error("Failed to release stale email claims", "error", err)
	} else if released > 0 {
		slog.Warn("Released stale email claims", "count", released)
	}

	if w.config.Retention <= 0 {
		return
	}
	purged, err := w.queue.PurgeFinished(ctx, now.Add(-w.config.Retention))
	if err != nil {
		slog.Error("Failed to purge finished emails", "error", err)
		return
	}
	if purged > 0 {
		slog.Info("Purged finished emails", "count", purged)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) bool {
	logger := slog.With("email_id", job.ID, "dedupe_key", job.DedupeKey, "attempt", job.Attempts+1)

	msg, err := w.render(job)
	if err == nil {
		var resendID string
		resendID, err = w.sender.Send(ctx, adapter.OutboundEmail{
			To:        job.RecipientEmail,
			Subject:   job.Subject,
			HTML:      msg.HTML,
			Text:      msg.Text,
			Reference: job.DedupeKey,
		})
		if err == nil {
			job.MarkSent(resendID, w.clock.Now())
			if err := w.queue.Save(ctx, job); err != nil {
				logger.Error("Email sent but not marked sent", "error", err, "resend_id", resendID)
			}
			logger.Info("Email sent", "resend_id", resendID)
			return true
		}
	}

	job.MarkFailed(err, domainerror.IsPermanentEmailFailure(err), w.clock.Now())
	if saveErr := w.queue.Save(ctx, job); saveErr != nil {
		logger.Error("Failed to record email failure", "error", saveErr)
	}
	if job.Status == entity.EmailStatusFailed {
		logger.Error("Email abandoned", "error", err)
	} else {
		logger.Warn("Email send failed, retry scheduled", "error", err, "scheduled_at", job.ScheduledAt)
	}
	return false
}

func (w *Worker) render(job *entity.EmailJob) (templates.Message, error) {
	name := string(job.TemplateType)
	if !w.renderer.Has(name) {
		return templates.Message{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate, name, domainerror.ErrUnknownTemplate)
	}

	var data interface{} = job.TemplateData
	if job.TemplateType == entity.TemplateJobReport {
		data = templates.JobReportFromPayload(job.TemplateData)
	}

	msg, err := w.renderer.Render(name, data)
	if err != nil {
		return templates.Message{}, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "render "+name, err)
	}
	return msg, nil
}
