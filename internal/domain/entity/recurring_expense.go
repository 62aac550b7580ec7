// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecurringTitleSuffix marks expenses materialised from a recurring template.
const RecurringTitleSuffix = " (Recurring)"

// RecurringExpense is a template that produces one expense on a fixed day of
// every month. LastGeneratedDate is the YYYY-MM-DD watermark of the last day
// an expense was produced and is only written by the generator.
type RecurringExpense struct {
	ID                uuid.UUID
	Amount            float64
	Category          Category
	Title             string
	DayOfMonth        int
	UserID            *string
	Username          *string
	LastGeneratedDate *string
	CreatedAt         time.Time
}

// NewRecurringExpense creates a new RecurringExpense entity.
func NewRecurringExpense(amount float64, category Category, title string, dayOfMonth int, userID, username *string) *RecurringExpense {
	return &RecurringExpense{
		ID:         uuid.New(),
		Amount:     amount,
		Category:   category,
		Title:      title,
		DayOfMonth: dayOfMonth,
		UserID:     userID,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}
}

// DueOn reports whether the template fires on the given day of month.
// There is no end-of-month rollover: day 31 never fires in a 30-day month.
func (r *RecurringExpense) DueOn(day int) bool {
	return r.DayOfMonth == day
}

// GeneratedOn reports whether the watermark already records dayKey.
func (r *RecurringExpense) GeneratedOn(dayKey string) bool {
	return r.LastGeneratedDate != nil && *r.LastGeneratedDate == dayKey
}

// ToExpense materialises the template into an expense dated now.
func (r *RecurringExpense) ToExpense(now time.Time) *Expense {
	return NewExpense(r.Amount, r.Category, r.Title+RecurringTitleSuffix, now, r.UserID, r.Username, nil)
}

// BelongsTo reports whether the template was created by userID.
func (r *RecurringExpense) BelongsTo(userID string) bool {
	return r.UserID != nil && *r.UserID == userID
}

// OwnerID returns the owning user ID or an empty string.
func (r *RecurringExpense) OwnerID() string {
	if r.UserID == nil {
		return ""
	}
	return *r.UserID
}
