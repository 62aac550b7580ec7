package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/application/usecase/recurring"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring expense template endpoints.
type RecurringController struct {
	listUseCase   *recurring.ListRecurringUseCase
	createUseCase *recurring.CreateRecurringUseCase
	deleteUseCase *recurring.DeleteRecurringUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	listUseCase *recurring.ListRecurringUseCase,
	createUseCase *recurring.CreateRecurringUseCase,
	deleteUseCase *recurring.DeleteRecurringUseCase,
) *RecurringController {
	return &RecurringController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringInput{
		ActorID: identity.UserID,
		IsAdmin: identity.IsAdmin,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve recurring expenses")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringListResponse(output.Recurring))
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, string(domainerror.ErrCodeMissingRecurringFields))
		return
	}

	input := recurring.CreateRecurringInput{
		Amount:     req.Amount,
		Category:   req.Category,
		Title:      req.Title,
		DayOfMonth: req.DayOfMonth,
		UserID:     &identity.UserID,
	}
	if identity.Username != "" {
		input.Username = &identity.Username
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to create recurring expense")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringResponse(output.Recurring))
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid recurring expense ID format", string(domainerror.ErrCodeMissingRecurringFields))
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringInput{
		RecurringID: recurringID,
		ActorID:     identity.UserID,
		IsAdmin:     identity.IsAdmin,
	})
	if err != nil {
		respondError(ctx, err, "Failed to delete recurring expense")
		return
	}

	ctx.Status(http.StatusNoContent)
}
