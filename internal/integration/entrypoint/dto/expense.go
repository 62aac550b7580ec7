package dto

import (
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Amount     float64    `json:"amount" binding:"required,gt=0"`
	Category   string     `json:"category" binding:"required"`
	Title      string     `json:"title"`
	Date       *time.Time `json:"date,omitempty"`
	ReceiptURL *string    `json:"receipt_url,omitempty"`
}

// UpdateExpenseRequest represents the request body for expense updates.
type UpdateExpenseRequest struct {
	Amount     *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Category   *string    `json:"category,omitempty"`
	Title      *string    `json:"title,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	ReceiptURL *string    `json:"receipt_url,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	UserID     *string   `json:"user_id,omitempty"`
	Username   *string   `json:"username,omitempty"`
	ReceiptURL *string   `json:"receipt_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    float64           `json:"total"`
	Count    int               `json:"count"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:         e.ID.String(),
		Amount:     e.Amount,
		Category:   string(e.Category),
		Title:      e.Title,
		Date:       e.Date,
		UserID:     e.UserID,
		Username:   e.Username,
		ReceiptURL: e.ReceiptURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense, total float64) ExpenseListResponse {
	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: items,
		Total:    total,
		Count:    len(items),
	}
}
