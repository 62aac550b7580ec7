package dto

import (
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
)

// CreateRecurringRequest represents the request body for recurring expense creation.
type CreateRecurringRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Category   string  `json:"category" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	DayOfMonth int     `json:"day_of_month" binding:"required,min=1,max=31"`
}

// RecurringResponse represents a recurring expense template in API responses.
type RecurringResponse struct {
	ID                string    `json:"id"`
	Amount            float64   `json:"amount"`
	Category          string    `json:"category"`
	Title             string    `json:"title"`
	DayOfMonth        int       `json:"day_of_month"`
	UserID            *string   `json:"user_id,omitempty"`
	Username          *string   `json:"username,omitempty"`
	LastGeneratedDate *string   `json:"last_generated_date,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// RecurringListResponse represents the response for listing recurring templates.
type RecurringListResponse struct {
	Recurring []RecurringResponse `json:"recurring"`
}

// ToRecurringResponse converts a domain RecurringExpense to a RecurringResponse DTO.
func ToRecurringResponse(r *entity.RecurringExpense) RecurringResponse {
	return RecurringResponse{
		ID:                r.ID.String(),
		Amount:            r.Amount,
		Category:          string(r.Category),
		Title:             r.Title,
		DayOfMonth:        r.DayOfMonth,
		UserID:            r.UserID,
		Username:          r.Username,
		LastGeneratedDate: r.LastGeneratedDate,
		CreatedAt:         r.CreatedAt,
	}
}

// ToRecurringListResponse converts templates to a RecurringListResponse DTO.
func ToRecurringListResponse(items []*entity.RecurringExpense) RecurringListResponse {
	out := make([]RecurringResponse, len(items))
	for i, r := range items {
		out[i] = ToRecurringResponse(r)
	}
	return RecurringListResponse{Recurring: out}
}
