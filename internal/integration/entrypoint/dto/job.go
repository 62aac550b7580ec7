package dto

import (
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
)

// ItemResultResponse is the outcome of one item in a job run.
type ItemResultResponse struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JobRunResponse represents one scheduler pass.
type JobRunResponse struct {
	ID            string               `json:"id"`
	Job           string               `json:"job"`
	StartedAt     time.Time            `json:"started_at"`
	FinishedAt    time.Time            `json:"finished_at"`
	Processed     int                  `json:"processed"`
	Succeeded     int                  `json:"succeeded"`
	Skipped       int                  `json:"skipped"`
	Failed        int                  `json:"failed"`
	FailedItemIDs []string             `json:"failed_item_ids"`
	Items         []ItemResultResponse `json:"items,omitempty"`
}

// JobRunListResponse lists recent runs and the latest run per job.
type JobRunListResponse struct {
	Runs   []JobRunResponse          `json:"runs"`
	Latest map[string]JobRunResponse `json:"latest"`
}

// ToJobRunResponse converts a JobRun entity to a JobRunResponse DTO.
func ToJobRunResponse(run *entity.JobRun, withItems bool) JobRunResponse {
	resp := JobRunResponse{
		ID:            run.ID.String(),
		Job:           string(run.Job),
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Processed:     run.Processed,
		Succeeded:     run.Succeeded,
		Skipped:       run.Skipped,
		Failed:        run.Failed,
		FailedItemIDs: run.FailedItemIDs,
	}
	if resp.FailedItemIDs == nil {
		resp.FailedItemIDs = []string{}
	}
	if withItems {
		resp.Items = make([]ItemResultResponse, len(run.Items))
		for i, item := range run.Items {
			detail := item.Detail
			if item.Err != nil {
				if detail != "" {
					detail += ": "
				}
				detail += item.Err.Error()
			}
			resp.Items[i] = ItemResultResponse{
				ItemID: item.ItemID,
				Status: string(item.Status),
				Detail: detail,
			}
		}
	}
	return resp
}

// ToJobRunListResponse converts recent and latest runs to a DTO.
func ToJobRunListResponse(runs []*entity.JobRun, latest map[entity.JobName]*entity.JobRun) JobRunListResponse {
	resp := JobRunListResponse{
		Runs:   make([]JobRunResponse, len(runs)),
		Latest: make(map[string]JobRunResponse, len(latest)),
	}
	for i, run := range runs {
		resp.Runs[i] = ToJobRunResponse(run, false)
	}
	for name, run := range latest {
		resp.Latest[string(name)] = ToJobRunResponse(run, false)
	}
	return resp
}
