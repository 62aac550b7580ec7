package model

import (
	"log/slog"
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database. One row per
// user, holding the default budget and the alert watermark.
type BudgetModel struct {
	UserID         string    `gorm:"type:varchar(64);primaryKey"`
	Username       string    `gorm:"type:varchar(255)"`
	Amount         float64   `gorm:"type:decimal(15,2);not null;default:0"`
	LastAlertLevel string    `gorm:"type:varchar(8);not null;default:'NONE'"`
	LastAlertMonth *string   `gorm:"type:varchar(7)"` // YYYY-MM
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain BudgetRecord entity.
func (m *BudgetModel) ToEntity() *entity.BudgetRecord {
	var month *valueobject.Month
	if m.LastAlertMonth != nil && *m.LastAlertMonth != "" {
		parsed, err := valueobject.ParseMonth(*m.LastAlertMonth)
		if err != nil {
			slog.Warn("Ignoring malformed alert month", "user_id", m.UserID, "value", *m.LastAlertMonth)
		} else {
			month = &parsed
		}
	}

	return &entity.BudgetRecord{
		UserID:         m.UserID,
		Username:       m.Username,
		Amount:         m.Amount,
		LastAlertLevel: entity.ParseAlertLevel(m.LastAlertLevel),
		LastAlertMonth: month,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MonthlyBudgetModel represents the monthly_budgets table in the database.
type MonthlyBudgetModel struct {
	UserID    string    `gorm:"type:varchar(64);primaryKey"`
	Month     string    `gorm:"type:varchar(7);primaryKey"` // YYYY-MM
	Amount    float64   `gorm:"type:decimal(15,2);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the MonthlyBudgetModel.
func (MonthlyBudgetModel) TableName() string {
	return "monthly_budgets"
}

// ToEntity converts a MonthlyBudgetModel to a domain MonthlyBudget entity.
// Rows with a malformed month are reported as not ok.
func (m *MonthlyBudgetModel) ToEntity() (*entity.MonthlyBudget, bool) {
	month, err := valueobject.ParseMonth(m.Month)
	if err != nil {
		slog.Warn("Ignoring malformed monthly budget", "user_id", m.UserID, "month", m.Month)
		return nil, false
	}

	return &entity.MonthlyBudget{
		UserID:    m.UserID,
		Month:     month,
		Amount:    m.Amount,
		UpdatedAt: m.UpdatedAt,
	}, true
}
