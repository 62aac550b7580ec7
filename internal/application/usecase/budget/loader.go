package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// LedgerLoader reads the rows a Ledger is built from.
type LedgerLoader struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
}

// NewLedgerLoader creates a new LedgerLoader instance.
func NewLedgerLoader(budgetRepo adapter.BudgetRepository, expenseRepo adapter.ExpenseRepository) *LedgerLoader {
	return &LedgerLoader{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
	}
}

// LoadUser builds a ledger holding only userID's rows.
func (l *LedgerLoader) LoadUser(ctx context.Context, loc *time.Location, userID string) (*Ledger, error) {
	var records []*entity.BudgetRecord
	record, err := l.budgetRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		records = append(records, record)
	case errors.Is(err, domainerror.ErrBudgetNotFound):
	default:
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	overrides, err := l.budgetRepo.ListMonthlyBudgets(ctx, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly budgets: %w", err)
	}

	expenses, err := l.expenseRepo.List(ctx, entity.ExpenseFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return NewLedger(loc, records, overrides, expenses), nil
}

// LoadAll builds a ledger over every user.
func (l *LedgerLoader) LoadAll(ctx context.Context, loc *time.Location) (*Ledger, error) {
	records, err := l.budgetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	overrides, err := l.budgetRepo.ListMonthlyBudgets(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly budgets: %w", err)
	}

	expenses, err := l.expenseRepo.List(ctx, entity.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return NewLedger(loc, records, overrides, expenses), nil
}
