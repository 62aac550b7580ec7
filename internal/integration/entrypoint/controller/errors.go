// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/usecase/job"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
	"github.com/spendsync/backend/internal/integration/entrypoint/middleware"
)

// respondError maps domain errors to HTTP responses. Anything unrecognised
// is logged and answered with 500 and fallback as the message.
func respondError(ctx *gin.Context, err error, fallback string) {
	var (
		expenseErr   *domainerror.ExpenseError
		budgetErr    *domainerror.BudgetError
		recurringErr *domainerror.RecurringError
		ntfErr       *domainerror.NotificationError
		currencyErr  *domainerror.CurrencyError
		authErr      *domainerror.AuthError
	)

	switch {
	case errors.As(err, &expenseErr):
		writeError(ctx, statusForCode(string(expenseErr.Code)), expenseErr.Message, string(expenseErr.Code))
	case errors.As(err, &budgetErr):
		writeError(ctx, statusForCode(string(budgetErr.Code)), budgetErr.Message, string(budgetErr.Code))
	case errors.As(err, &recurringErr):
		writeError(ctx, statusForCode(string(recurringErr.Code)), recurringErr.Message, string(recurringErr.Code))
	case errors.As(err, &currencyErr):
		status := http.StatusServiceUnavailable
		if currencyErr.Code == domainerror.ErrCodeUnsupportedCurrency {
			status = http.StatusBadRequest
		}
		writeError(ctx, status, currencyErr.Message, string(currencyErr.Code))
	case errors.As(err, &ntfErr):
		writeError(ctx, http.StatusServiceUnavailable, ntfErr.Message, string(ntfErr.Code))
	case errors.As(err, &authErr):
		writeError(ctx, middleware.AuthStatus(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.Is(err, job.ErrUnknownJob):
		writeError(ctx, http.StatusNotFound, err.Error(), "")
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		writeError(ctx, http.StatusInternalServerError, fallback, "")
	}
}

// statusForCode reads the category digits of an XXX-CCNNNN code: 01 is a
// validation error, 02 is a lookup or permission error.
func statusForCode(code string) int {
	_, rest, found := strings.Cut(code, "-")
	if !found || len(rest) < 6 {
		return http.StatusInternalServerError
	}

	switch rest[:2] {
	case "01":
		return http.StatusBadRequest
	case "02":
		if rest[2:] == "0001" {
			return http.StatusNotFound
		}
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func requireIdentity(ctx *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
	}
	return identity, ok
}

func bindError(ctx *gin.Context, err error, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: err.Error(),
	})
}

func optionalQuery(ctx *gin.Context, key string) *string {
	if v := strings.TrimSpace(ctx.Query(key)); v != "" {
		return &v
	}
	return nil
}
