// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobName identifies a scheduler pass.
type JobName string

const (
	JobRecurring     JobName = "recurring"
	JobBudgetAlerts  JobName = "budget_alerts"
	JobResetReminder JobName = "reset_reminder"
	JobUpcomingBills JobName = "upcoming_bills"
)

// ItemStatus is the outcome of one item inside a pass.
type ItemStatus string

const (
	ItemGenerated ItemStatus = "generated"
	ItemSkipped   ItemStatus = "skipped"
	ItemSent      ItemStatus = "sent"
	ItemReset     ItemStatus = "reset"
	ItemFailed    ItemStatus = "failed"
)

// ItemResult records what happened to a single template or user in a pass.
type ItemResult struct {
	ItemID string
	Status ItemStatus
	Detail string
	Err    error
}

// Failed reports whether the item failed.
func (r ItemResult) Failed() bool {
	return r.Status == ItemFailed
}

// JobRun is the persisted summary of one scheduler pass.
type JobRun struct {
	ID            uuid.UUID
	Job           JobName
	StartedAt     time.Time
	FinishedAt    time.Time
	Processed     int
	Succeeded     int
	Skipped       int
	Failed        int
	FailedItemIDs []string
	Items         []ItemResult
}

// NewJobRun starts a run for job at startedAt.
func NewJobRun(job JobName, startedAt time.Time) *JobRun {
	return &JobRun{
		ID:        uuid.New(),
		Job:       job,
		StartedAt: startedAt,
	}
}

// Record adds an item outcome to the run counters.
func (j *JobRun) Record(item ItemResult) {
	j.Items = append(j.Items, item)
	j.Processed++
	switch item.Status {
	case ItemFailed:
		j.Failed++
		j.FailedItemIDs = append(j.FailedItemIDs, item.ItemID)
	case ItemSkipped:
		j.Skipped++
	default:
		j.Succeeded++
	}
}

// Finish stamps the completion time.
func (j *JobRun) Finish(at time.Time) {
	j.FinishedAt = at
}

// HasFailures reports whether any item failed.
func (j *JobRun) HasFailures() bool {
	return j.Failed > 0
}
