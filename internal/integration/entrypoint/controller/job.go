package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// JobController handles admin endpoints for the scheduled passes.
type JobController struct {
	runUseCase      *job.RunJobUseCase
	runDailyUseCase *job.RunDailyUseCase
	listUseCase     *job.ListRunsUseCase
}

// NewJobController creates a new job controller instance.
func NewJobController(runUseCase *job.RunJobUseCase, runDailyUseCase *job.RunDailyUseCase, listUseCase *job.ListRunsUseCase) *JobController {
	return &JobController{
		runUseCase:      runUseCase,
		runDailyUseCase: runDailyUseCase,
		listUseCase:     listUseCase,
	}
}

// Run handles POST /admin/jobs/:job requests. The pass result is returned
// even when the pass itself failed.
func (c *JobController) Run(ctx *gin.Context) {
	name := ctx.Param("job")

	if name == job.DailyAlias {
		output, err := c.runDailyUseCase.Execute(ctx.Request.Context())
		if output == nil {
			respondError(ctx, err, "Failed to run daily jobs")
			return
		}
		runs := make([]dto.JobRunResponse, len(output.Runs))
		for i, run := range output.Runs {
			runs[i] = dto.ToJobRunResponse(run, true)
		}
		ctx.JSON(http.StatusOK, gin.H{"runs": runs})
		return
	}

	output, err := c.runUseCase.Execute(ctx.Request.Context(), job.RunJobInput{Job: job.ResolveName(name)})
	if output == nil {
		respondError(ctx, err, "Failed to run job")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToJobRunResponse(output.Run, true))
}

// List handles GET /admin/jobs requests.
func (c *JobController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), job.ListRunsInput{Limit: limit})
	if err != nil {
		respondError(ctx, err, "Failed to list job runs")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToJobRunListResponse(output.Runs, output.Latest))
}
