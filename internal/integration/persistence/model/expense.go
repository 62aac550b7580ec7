// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount     float64   `gorm:"type:decimal(15,2);not null"`
	Category   string    `gorm:"type:varchar(32);not null"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Date       time.Time `gorm:"not null;index"`
	UserID     *string   `gorm:"type:varchar(64);index"`
	Username   *string   `gorm:"type:varchar(255)"`
	ReceiptURL *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:         m.ID,
		Amount:     m.Amount,
		Category:   entity.Category(m.Category),
		Title:      m.Title,
		Date:       m.Date,
		UserID:     m.UserID,
		Username:   m.Username,
		ReceiptURL: m.ReceiptURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:         e.ID,
		Amount:     e.Amount,
		Category:   string(e.Category),
		Title:      e.Title,
		Date:       e.Date.UTC(),
		UserID:     e.UserID,
		Username:   e.Username,
		ReceiptURL: e.ReceiptURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
