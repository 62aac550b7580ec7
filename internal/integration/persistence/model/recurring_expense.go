package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/domain/entity"
)

// RecurringExpenseModel represents the recurring_expenses table in the database.
type RecurringExpenseModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount            float64   `gorm:"type:decimal(15,2);not null"`
	Category          string    `gorm:"type:varchar(32);not null"`
	Title             string    `gorm:"type:varchar(255);not null"`
	DayOfMonth        int       `gorm:"not null;index"`
	UserID            *string   `gorm:"type:varchar(64);index"`
	Username          *string   `gorm:"type:varchar(255)"`
	LastGeneratedDate *string   `gorm:"type:varchar(10)"` // YYYY-MM-DD
	CreatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringExpenseModel.
func (RecurringExpenseModel) TableName() string {
	return "recurring_expenses"
}

// ToEntity converts a RecurringExpenseModel to a domain RecurringExpense entity.
func (m *RecurringExpenseModel) ToEntity() *entity.RecurringExpense {
	return &entity.RecurringExpense{
		ID:                m.ID,
		Amount:            m.Amount,
		Category:          entity.Category(m.Category),
		Title:             m.Title,
		DayOfMonth:        m.DayOfMonth,
		UserID:            m.UserID,
		Username:          m.Username,
		LastGeneratedDate: m.LastGeneratedDate,
		CreatedAt:         m.CreatedAt,
	}
}

// RecurringExpenseFromEntity creates a RecurringExpenseModel from a domain entity.
func RecurringExpenseFromEntity(r *entity.RecurringExpense) *RecurringExpenseModel {
	return &RecurringExpenseModel{
		ID:                r.ID,
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
