package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	runsUseCase     *job.ListRunsUseCase
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string                        `json:"status"`
	Database  string                        `json:"database"`
	Timestamp string                        `json:"timestamp"`
	LastRuns  map[string]dto.JobRunResponse `json:"last_runs,omitempty"`
}

// NewHealthController creates a new health controller instance. runsUseCase may be nil.
func NewHealthController(dbHealthChecker func() bool, runsUseCase *job.ListRunsUseCase) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		runsUseCase:     runsUseCase,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		response.Database = "connected"
	} else {
		response.Status = "degraded"
	}

	if h.runsUseCase != nil && response.Database == "connected" {
		output, err := h.runsUseCase.Execute(c.Request.Context(), job.ListRunsInput{Limit: 1})
		if err != nil {
			slog.Warn("Failed to load job runs for health check", "error", err)
		} else {
			response.LastRuns = dto.ToJobRunListResponse(nil, output.Latest).Latest
		}
	}

	c.JSON(http.StatusOK, response)
}
