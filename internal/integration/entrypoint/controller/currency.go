package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/usecase/currency"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// CurrencyController handles exchange rate endpoints.
type CurrencyController struct {
	rateUseCase *currency.GetRateUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(rateUseCase *currency.GetRateUseCase) *CurrencyController {
	return &CurrencyController{rateUseCase: rateUseCase}
}

// Rate handles GET /currency/rate requests.
func (c *CurrencyController) Rate(ctx *gin.Context) {
	output, err := c.rateUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Failed to load exchange rate")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExchangeRateResponse(output.Rate))
}
