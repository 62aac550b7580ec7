package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/application/usecase/expense"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	listUseCase   *expense.ListExpensesUseCase
	createUseCase *expense.CreateExpenseUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		ActorID: identity.UserID,
		IsAdmin: identity.IsAdmin,
	}

	if raw := ctx.Query("month"); raw != "" {
		month, err := valueobject.ParseMonth(raw)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, "Invalid month, expected YYYY-MM", string(domainerror.ErrCodeInvalidMonth))
			return
		}
		input.Month = &month
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve expenses")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses, output.Total))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	input := expense.CreateExpenseInput{
		Amount:     req.Amount,
		Category:   req.Category,
		Title:      req.Title,
		Date:       req.Date,
		UserID:     &identity.UserID,
		ReceiptURL: req.ReceiptURL,
	}
	if identity.Username != "" {
		input.Username = &identity.Username
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to create expense")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid expense ID format", string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		ExpenseID:  expenseID,
		ActorID:    identity.UserID,
		IsAdmin:    identity.IsAdmin,
		Amount:     req.Amount,
		Category:   req.Category,
		Title:      req.Title,
		Date:       req.Date,
		ReceiptURL: req.ReceiptURL,
	})
	if err != nil {
		respondError(ctx, err, "Failed to update expense")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid expense ID format", string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		ActorID:   identity.UserID,
		IsAdmin:   identity.IsAdmin,
	})
	if err != nil {
		respondError(ctx, err, "Failed to delete expense")
		return
	}

	ctx.Status(http.StatusNoContent)
}
