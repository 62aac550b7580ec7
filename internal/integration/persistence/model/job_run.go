package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/spendsync/backend/internal/domain/entity"
)

// JobRunModel represents the job_runs table in the database.
type JobRunModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Job           string         `gorm:"type:varchar(32);not null;index"`
	StartedAt     time.Time      `gorm:"not null;index"`
	FinishedAt    time.Time      `gorm:"not null"`
	Processed     int            `gorm:"not null;default:0"`
	Succeeded     int            `gorm:"not null;default:0"`
	Skipped       int            `gorm:"not null;default:0"`
	Failed        int            `gorm:"not null;default:0"`
	FailedItemIDs pq.StringArray `gorm:"type:text"` // Postgres array literal
	Items         string         `gorm:"type:text;not null;default:'[]'"`
}

// TableName returns the table name for the JobRunModel.
func (JobRunModel) TableName() string {
	return "job_runs"
}

type jobItemRecord struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ToEntity converts a JobRunModel to a domain JobRun entity.
func (m *JobRunModel) ToEntity() *entity.JobRun {
	var records []jobItemRecord
	if m.Items != "" {
		if err := json.Unmarshal([]byte(m.Items), &records); err != nil {
			slog.Warn("Failed to unmarshal job run items", "error", err, "id", m.ID)
		}
	}

	items := make([]entity.ItemResult, len(records))
	for i, r := range records {
		items[i] = entity.ItemResult{
			ItemID: r.ItemID,
			Status: entity.ItemStatus(r.Status),
			Detail: r.Detail,
		}
		if r.Error != "" {
			items[i].Detail = joinDetail(r.Detail, r.Error)
		}
	}

	return &entity.JobRun{
		ID:            m.ID,
		Job:           entity.JobName(m.Job),
		StartedAt:     m.StartedAt,
		FinishedAt:    m.FinishedAt,
		Processed:     m.Processed,
		Succeeded:     m.Succeeded,
		Skipped:       m.Skipped,
		Failed:        m.Failed,
		FailedItemIDs: []string(m.FailedItemIDs),
		Items:         items,
	}
}

// JobRunFromEntity creates a JobRunModel from a domain JobRun entity.
func JobRunFromEntity(run *entity.JobRun) *JobRunModel {
	records := make([]jobItemRecord, len(run.Items))
	for i, item := range run.Items {
		records[i] = jobItemRecord{
			ItemID: item.ItemID,
			Status: string(item.Status),
			Detail: item.Detail,
		}
		if item.Err != nil {
			records[i].Error = item.Err.Error()
		}
	}

	itemsJSON, err := json.Marshal(records)
	if err != nil {
		slog.Error("Failed to marshal job run items", "error", err, "id", run.ID)
		itemsJSON = []byte("[]")
	}

	return &JobRunModel{
		ID:            run.ID,
		Job:           string(run.Job),
		StartedAt:     run.StartedAt.UTC(),
		FinishedAt:    run.FinishedAt.UTC(),
		Processed:     run.Processed,
		Succeeded:     run.Succeeded,
		Skipped:       run.Skipped,
		Failed:        run.Failed,
		FailedItemIDs: pq.StringArray(run.FailedItemIDs),
		Items:         string(itemsJSON),
	}
}

func joinDetail(detail, errText string) string {
	if detail == "" {
		return errText
	}
	return detail + ": " + errText
}
