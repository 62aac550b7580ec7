package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/application/usecase/budget"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	summaryUseCase     *budget.GetSummaryUseCase
	savingsUseCase     *budget.GetSavingsUseCase
	historyUseCase     *budget.GetHistoryUseCase
	groupUseCase       *budget.GetGroupSummaryUseCase
	setUseCase         *budget.SetBudgetUseCase
	setMonthlyUseCase  *budget.SetMonthlyBudgetUseCase
	listMonthlyUseCase *budget.ListMonthlyBudgetsUseCase
	formatter          adapter.MoneyFormatter
}

// BudgetUseCases groups the use cases served by the BudgetController.
type BudgetUseCases struct {
	Summary     *budget.GetSummaryUseCase
	Savings     *budget.GetSavingsUseCase
	History     *budget.GetHistoryUseCase
	Group       *budget.GetGroupSummaryUseCase
	Set         *budget.SetBudgetUseCase
	SetMonthly  *budget.SetMonthlyBudgetUseCase
	ListMonthly *budget.ListMonthlyBudgetsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(useCases BudgetUseCases, formatter adapter.MoneyFormatter) *BudgetController {
	return &BudgetController{
		summaryUseCase:     useCases.Summary,
		savingsUseCase:     useCases.Savings,
		historyUseCase:     useCases.History,
		groupUseCase:       useCases.Group,
		setUseCase:         useCases.Set,
		setMonthlyUseCase:  useCases.SetMonthly,
		listMonthlyUseCase: useCases.ListMonthly,
		formatter:          formatter,
	}
}

// Summary handles GET /budget/summary requests.
func (c *BudgetController) Summary(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	month, ok := parseMonthQuery(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), budget.GetSummaryInput{
		ActorID:      identity.UserID,
		IsAdmin:      identity.IsAdmin,
		TargetUserID: optionalQuery(ctx, "user_id"),
		Month:        month,
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute budget summary")
		return
	}

	ctx.JSON(http.StatusOK, c.withDisplay(ctx.Request.Context(), dto.ToSummaryResponse(output.UserID, output.Summary)))
}

// Savings handles GET /budget/savings requests.
func (c *BudgetController) Savings(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	output, err := c.savingsUseCase.Execute(ctx.Request.Context(), budget.GetSavingsInput{
		ActorID:      identity.UserID,
		IsAdmin:      identity.IsAdmin,
		TargetUserID: optionalQuery(ctx, "user_id"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute savings")
		return
	}

	ctx.JSON(http.StatusOK, dto.SavingsResponse{
		UserID:             output.UserID,
		CurrentMonth:       output.CurrentMonth.String(),
		AccumulatedSavings: output.AccumulatedSavings,
		RemainingThisMonth: output.RemainingThisMonth,
	})
}

// History handles GET /budget/history requests.
func (c *BudgetController) History(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), budget.GetHistoryInput{
		ActorID:      identity.UserID,
		IsAdmin:      identity.IsAdmin,
		TargetUserID: optionalQuery(ctx, "user_id"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute budget history")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output.UserID, output.Months))
}

// Group handles GET /budget/group requests.
func (c *BudgetController) Group(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	month, ok := parseMonthQuery(ctx)
	if !ok {
		return
	}

	output, err := c.groupUseCase.Execute(ctx.Request.Context(), budget.GetGroupSummaryInput{
		IsAdmin: identity.IsAdmin,
		Month:   month,
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute group budget")
		return
	}

	resp := dto.ToGroupSummaryResponse(output.Summary, output.Members)
	resp.Summary = c.withDisplay(ctx.Request.Context(), resp.Summary)
	ctx.JSON(http.StatusOK, resp)
}

// Set handles POST /budget requests.
func (c *BudgetController) Set(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.SetBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), budget.SetBudgetInput{
		ActorID:        identity.UserID,
		ActorName:      identity.Username,
		IsAdmin:        identity.IsAdmin,
		TargetUserID:   req.UserID,
		TargetUsername: req.Username,
		Amount:         *req.Amount,
	})
	if err != nil {
		respondError(ctx, err, "Failed to set budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{
		UserID: output.UserID,
		Amount: output.Amount,
	})
}

// SetMonthly handles PUT /budget/monthly/:month requests.
func (c *BudgetController) SetMonthly(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.SetMonthlyBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	output, err := c.setMonthlyUseCase.Execute(ctx.Request.Context(), budget.SetMonthlyBudgetInput{
		ActorID:      identity.UserID,
		IsAdmin:      identity.IsAdmin,
		TargetUserID: req.UserID,
		Month:        ctx.Param("month"),
		Amount:       *req.Amount,
	})
	if err != nil {
		respondError(ctx, err, "Failed to set monthly budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{
		UserID: output.UserID,
		Month:  output.Month.String(),
		Amount: output.Amount,
	})
}

// ListMonthly handles GET /budget/monthly requests.
func (c *BudgetController) ListMonthly(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	output, err := c.listMonthlyUseCase.Execute(ctx.Request.Context(), budget.ListMonthlyBudgetsInput{
		ActorID:      identity.UserID,
		IsAdmin:      identity.IsAdmin,
		TargetUserID: optionalQuery(ctx, "user_id"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to list monthly budgets")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyBudgetListResponse(output.UserID, output.Overrides))
}

func (c *BudgetController) withDisplay(ctx context.Context, resp dto.SummaryResponse) dto.SummaryResponse {
	if c.formatter == nil {
		return resp
	}
	resp.DisplayCurrency = c.formatter.DisplayCurrency()
	resp.BudgetDisplay = c.formatter.Format(ctx, resp.Budget)
	resp.SpentDisplay = c.formatter.Format(ctx, resp.Spent)
	resp.RemainingDisplay = c.formatter.Format(ctx, resp.Remaining)
	return resp
}

func parseMonthQuery(ctx *gin.Context) (*valueobject.Month, bool) {
	raw := ctx.Query("month")
	if raw == "" {
		return nil, true
	}
	month, err := valueobject.ParseMonth(raw)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid month, expected YYYY-MM", string(domainerror.ErrCodeInvalidMonth))
		return nil, false
	}
	return &month, true
}
