package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/domain/entity"
)

// EmailQueueModel is a row of the email_queue outbox. The worker polls on
// (status, scheduled_at); dedupe_key keeps reports unique per run.
type EmailQueueModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	DedupeKey      string       `gorm:"type:varchar(120);not null;uniqueIndex"`
	TemplateType   string       `gorm:"type:varchar(50);not null"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	Payload        string       `gorm:"type:text;not null;default:'{}'"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	ScheduledAt    time.Time    `gorm:"not null;index:idx_email_queue_due,priority:2"`
	Attempts       int          `gorm:"not null;default:0"`
	MaxAttempts    int          `gorm:"not null;default:3"`
	LastError      string       `gorm:"type:text"`
	ResendID       string       `gorm:"type:varchar(100)"`
	CreatedAt      time.Time    `gorm:"not null"`
	ClaimedAt      sql.NullTime `gorm:"index"`
	ProcessedAt    sql.NullTime `gorm:"index"`
}

func (EmailQueueModel) TableName() string {
	return "email_queue"
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// ToEntity converts the row into an EmailJob. An unreadable payload yields an
// empty map so the template reports the missing fields instead of the worker
// stalling on the row.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	payload := map[string]interface{}{}
	if m.Payload != "" {
		if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
			slog.Warn("Unreadable email payload", "error", err, "id", m.ID, "dedupe_key", m.DedupeKey)
			payload = map[string]interface{}{}
		}
	}

	return &entity.EmailJob{
		ID:             m.ID,
		DedupeKey:      m.DedupeKey,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		Subject:        m.Subject,
		TemplateData:   payload,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ClaimedAt:      timePtr(m.ClaimedAt),
		ProcessedAt:    timePtr(m.ProcessedAt),
	}
}

// EmailQueueModelFromEntity converts an EmailJob into its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) (*EmailQueueModel, error) {
	payload := []byte("{}")
	if job.TemplateData != nil {
		var err error
		if payload, err = json.Marshal(job.TemplateData); err != nil {
			return nil, err
		}
	}

	return &EmailQueueModel{
		ID:             job.ID,
		DedupeKey:      job.DedupeKey,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		Subject:        job.Subject,
		Payload:        string(payload),
		Status:         string(job.Status),
		ScheduledAt:    job.ScheduledAt.UTC(),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt.UTC(),
		ClaimedAt:      nullTime(job.ClaimedAt),
		ProcessedAt:    nullTime(job.ProcessedAt),
	}, nil
}
