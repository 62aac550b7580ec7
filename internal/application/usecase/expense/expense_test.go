package expense_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/expense"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

func strPtr(s string) *string { return &s }

func TestCreateExpenseUseCase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)

	newUseCase := func() (*expense.CreateExpenseUseCase, *memory.ExpenseStore, *memory.BudgetStore) {
		expenses := memory.NewExpenseStore()
		budgets := memory.NewBudgetStore()
		return expense.NewCreateExpenseUseCase(expenses, budgets, memory.NewClock(now)), expenses, budgets
	}

	t.Run("stores expense and creates a zero budget record", func(t *testing.T) {
		uc, expenses, budgets := newUseCase()

		out, err := uc.Execute(ctx, expense.CreateExpenseInput{
			Amount:   12.5,
			Category: " food ",
			UserID:   strPtr("u1"),
			Username: strPtr("alice"),
		})
		require.NoError(t, err)

		assert.Equal(t, entity.CategoryFood, out.Expense.Category)
		assert.Equal(t, entity.DefaultExpenseTitle, out.Expense.Title)
		assert.True(t, out.Expense.Date.Equal(now))
		assert.Equal(t, 1, expenses.Count())

		record := budgets.Record("u1")
		require.NotNil(t, record)
		assert.Equal(t, 0.0, record.Amount)
		assert.Equal(t, "alice", record.Username)
	})

	t.Run("does not overwrite an existing budget", func(t *testing.T) {
		uc, _, budgets := newUseCase()
		require.NoError(t, budgets.Upsert(ctx, "u1", "alice", 800))

		_, err := uc.Execute(ctx, expense.CreateExpenseInput{Amount: 1, Category: "Other", UserID: strPtr("u1")})
		require.NoError(t, err)
		assert.Equal(t, 800.0, budgets.Record("u1").Amount)
	})

	t.Run("rejects invalid amounts", func(t *testing.T) {
		uc, expenses, _ := newUseCase()

		for _, amount := range []float64{0, -3, math.NaN(), math.Inf(1)} {
			_, err := uc.Execute(ctx, expense.CreateExpenseInput{Amount: amount, Category: "Food"})

			var expenseErr *domainerror.ExpenseError
			require.True(t, errors.As(err, &expenseErr))
			assert.Equal(t, domainerror.ErrCodeInvalidExpenseAmount, expenseErr.Code)
		}
		assert.Equal(t, 0, expenses.Count())
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		uc, _, _ := newUseCase()
		_, err := uc.Execute(ctx, expense.CreateExpenseInput{Amount: 5, Category: "Travel"})
		assert.ErrorIs(t, err, domainerror.ErrInvalidCategory)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		uc, expenses, budgets := newUseCase()
		expenses.FailCreate = true

		_, err := uc.Execute(ctx, expense.CreateExpenseInput{Amount: 5, Category: "Food", UserID: strPtr("u1")})
		assert.ErrorIs(t, err, memory.ErrInjected)
		assert.Nil(t, budgets.Record("u1"))
	})
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	ctx := context.Background()
	clock := memory.NewClock(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))
	expenses := memory.NewExpenseStore()

	owned := entity.NewExpense(10, entity.CategoryFood, "Lunch", clock.Now(), strPtr("u1"), strPtr("alice"), nil)
	require.NoError(t, expenses.Create(ctx, owned))

	update := expense.NewUpdateExpenseUseCase(expenses, clock)
	del := expense.NewDeleteExpenseUseCase(expenses)

	t.Run("owner updates fields", func(t *testing.T) {
		amount := 25.0
		out, err := update.Execute(ctx, expense.UpdateExpenseInput{
			ExpenseID: owned.ID, ActorID: "u1", Amount: &amount, Category: strPtr("transport"),
		})
		require.NoError(t, err)
		assert.Equal(t, 25.0, out.Expense.Amount)
		assert.Equal(t, entity.CategoryTransport, out.Expense.Category)
		assert.Equal(t, "Lunch", out.Expense.Title)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := update.Execute(ctx, expense.UpdateExpenseInput{ExpenseID: owned.ID, ActorID: "u2", Title: strPtr("x")})
		assert.ErrorIs(t, err, domainerror.ErrUnauthorizedExpenseAccess)

		err = del.Execute(ctx, expense.DeleteExpenseInput{ExpenseID: owned.ID, ActorID: "u2"})
		assert.ErrorIs(t, err, domainerror.ErrUnauthorizedExpenseAccess)
	})

	t.Run("unknown expense is not found", func(t *testing.T) {
		err := del.Execute(ctx, expense.DeleteExpenseInput{ExpenseID: uuid.New(), ActorID: "u1"})

		var expenseErr *domainerror.ExpenseError
		require.True(t, errors.As(err, &expenseErr))
		assert.Equal(t, domainerror.ErrCodeExpenseNotFound, expenseErr.Code)
	})

	t.Run("admin deletes any expense", func(t *testing.T) {
		err := del.Execute(ctx, expense.DeleteExpenseInput{ExpenseID: owned.ID, ActorID: "admin", IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, 0, expenses.Count())
	})
}

func TestListExpensesUseCase(t *testing.T) {
	ctx := context.Background()
	clock := memory.NewClock(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))
	expenses := memory.NewExpenseStore()

	for _, e := range []*entity.Expense{
		entity.NewExpense(10, entity.CategoryFood, "", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), strPtr("u1"), nil, nil),
		entity.NewExpense(20, entity.CategoryFood, "", time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC), strPtr("u1"), nil, nil),
		entity.NewExpense(40, entity.CategoryFood, "", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), strPtr("u2"), nil, nil),
	} {
		require.NoError(t, expenses.Create(ctx, e))
	}

	uc := expense.NewListExpensesUseCase(expenses, clock)
	june := valueobject.Month{Year: 2024, Month: time.June}

	t.Run("user sees own expenses", func(t *testing.T) {
		out, err := uc.Execute(ctx, expense.ListExpensesInput{ActorID: "u1"})
		require.NoError(t, err)
		assert.Len(t, out.Expenses, 2)
		assert.Equal(t, 30.0, out.Total)
	})

	t.Run("month filter", func(t *testing.T) {
		out, err := uc.Execute(ctx, expense.ListExpensesInput{ActorID: "u1", Month: &june})
		require.NoError(t, err)
		assert.Len(t, out.Expenses, 1)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		out, err := uc.Execute(ctx, expense.ListExpensesInput{ActorID: "admin", IsAdmin: true, Month: &june})
		require.NoError(t, err)
		assert.Equal(t, 50.0, out.Total)
	})
}
