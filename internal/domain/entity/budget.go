// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/spendsync/backend/internal/domain/valueobject"
)

// AlertLevel is the per-user, per-month budget alert watermark.
type AlertLevel string

const (
	AlertLevelNone     AlertLevel = "NONE"
	AlertLevelWarning  AlertLevel = "80"
	AlertLevelCritical AlertLevel = "100"
)

// Rank orders alert levels NONE < 80 < 100. Unknown values rank as NONE.
func (l AlertLevel) Rank() int {
	switch l {
	case AlertLevelWarning:
		return 1
	case AlertLevelCritical:
		return 2
	default:
		return 0
	}
}

// ParseAlertLevel converts a persisted string to an AlertLevel.
func ParseAlertLevel(s string) AlertLevel {
	switch AlertLevel(s) {
	case AlertLevelWarning, AlertLevelCritical:
		return AlertLevel(s)
	default:
		return AlertLevelNone
	}
}

// BudgetRecord holds a user's default monthly budget and alert watermark.
type BudgetRecord struct {
	UserID         string
	Username       string
	Amount         float64
	LastAlertLevel AlertLevel
	LastAlertMonth *valueobject.Month
	UpdatedAt      time.Time
}

// NewBudgetRecord creates a BudgetRecord with no alert state.
func NewBudgetRecord(userID, username string, amount float64) *BudgetRecord {
	return &BudgetRecord{
		UserID:         userID,
		Username:       username,
		Amount:         amount,
		LastAlertLevel: AlertLevelNone,
		UpdatedAt:      time.Now().UTC(),
	}
}

// AlertStateFor returns the level that applies in month. A watermark from
// any other month reads as NONE.
func (b *BudgetRecord) AlertStateFor(month valueobject.Month) AlertLevel {
	if b.LastAlertMonth == nil || *b.LastAlertMonth != month {
		return AlertLevelNone
	}
	return b.LastAlertLevel
}

// NeedsMonthReset reports whether the stored watermark belongs to a month
// other than month.
func (b *BudgetRecord) NeedsMonthReset(month valueobject.Month) bool {
	return b.LastAlertMonth == nil || *b.LastAlertMonth != month
}

// MonthlyBudget overrides a user's default budget for a single month.
type MonthlyBudget struct {
	UserID    string
	Month     valueobject.Month
	Amount    float64
	UpdatedAt time.Time
}
