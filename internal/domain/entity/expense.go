// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultExpenseTitle is used when an expense is logged without a title.
const DefaultExpenseTitle = "Expense"

// Expense is a single spend entry in base-currency units.
type Expense struct {
	ID         uuid.UUID
	Amount     float64
	Category   Category
	Title      string
	Date       time.Time
	UserID     *string
	Username   *string
	ReceiptURL *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(amount float64, category Category, title string, date time.Time, userID, username, receiptURL *string) *Expense {
	now := time.Now().UTC()
	if title == "" {
		title = DefaultExpenseTitle
	}

	return &Expense{
		ID:         uuid.New(),
		Amount:     amount,
		Category:   category,
		Title:      title,
		Date:       date,
		UserID:     userID,
		Username:   username,
		ReceiptURL: receiptURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BelongsTo reports whether the expense was logged by userID.
func (e *Expense) BelongsTo(userID string) bool {
	return e.UserID != nil && *e.UserID == userID
}

// OwnerID returns the owning user ID or an empty string.
func (e *Expense) OwnerID() string {
	if e.UserID == nil {
		return ""
	}
	return *e.UserID
}

// OwnerName returns the owning username or an empty string.
func (e *Expense) OwnerName() string {
	if e.Username == nil {
		return ""
	}
	return *e.Username
}

// ExpenseFilter narrows an expense listing.
type ExpenseFilter struct {
	UserID *string
	From   *time.Time
	To     *time.Time
}
