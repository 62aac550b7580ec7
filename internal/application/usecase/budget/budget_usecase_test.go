package budget_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/budget"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

type fixture struct {
	budgets  *memory.BudgetStore
	expenses *memory.ExpenseStore
	clock    *memory.Clock
	loader   *budget.LedgerLoader
}

func newFixture() *fixture {
	f := &fixture{
		budgets:  memory.NewBudgetStore(),
		expenses: memory.NewExpenseStore(),
		clock:    memory.NewClock(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)),
	}
	f.loader = budget.NewLedgerLoader(f.budgets, f.expenses)
	return f
}

func (f *fixture) addExpense(t *testing.T, userID string, amount float64, date time.Time) {
	t.Helper()
	uid := userID
	e := entity.NewExpense(amount, entity.CategoryFood, "", date, &uid, nil, nil)
	require.NoError(t, f.expenses.Create(context.Background(), e))
}

func TestSetBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("user sets own budget", func(t *testing.T) {
		f := newFixture()
		uc := budget.NewSetBudgetUseCase(f.budgets)

		out, err := uc.Execute(ctx, budget.SetBudgetInput{ActorID: "u1", ActorName: "alice", Amount: 1000})
		require.NoError(t, err)
		assert.Equal(t, "u1", out.UserID)

		record := f.budgets.Record("u1")
		require.NotNil(t, record)
		assert.Equal(t, 1000.0, record.Amount)
		assert.Equal(t, "alice", record.Username)
	})

	t.Run("keeps alert state", func(t *testing.T) {
		f := newFixture()
		june := valueobject.Month{Year: 2024, Month: time.June}
		require.NoError(t, f.budgets.UpsertAlertState(ctx, "u1", entity.AlertLevelWarning, june))

		_, err := budget.NewSetBudgetUseCase(f.budgets).Execute(ctx, budget.SetBudgetInput{ActorID: "u1", Amount: 500})
		require.NoError(t, err)

		record := f.budgets.Record("u1")
		assert.Equal(t, entity.AlertLevelWarning, record.LastAlertLevel)
		assert.Equal(t, 500.0, record.Amount)
	})

	t.Run("rejects negative and NaN amounts", func(t *testing.T) {
		f := newFixture()
		uc := budget.NewSetBudgetUseCase(f.budgets)

		for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := uc.Execute(ctx, budget.SetBudgetInput{ActorID: "u1", Amount: amount})
			assert.ErrorIs(t, err, domainerror.ErrInvalidBudgetAmount)
		}
	})

	t.Run("non admin cannot set another user's budget", func(t *testing.T) {
		f := newFixture()
		target := "u2"

		_, err := budget.NewSetBudgetUseCase(f.budgets).Execute(ctx, budget.SetBudgetInput{ActorID: "u1", TargetUserID: &target, Amount: 10})

		var budgetErr *domainerror.BudgetError
		require.True(t, errors.As(err, &budgetErr))
		assert.Equal(t, domainerror.ErrCodeAdminRequired, budgetErr.Code)
		assert.Nil(t, f.budgets.Record("u2"))
	})

	t.Run("admin sets another user's budget", func(t *testing.T) {
		f := newFixture()
		target, name := "u2", "bob"

		_, err := budget.NewSetBudgetUseCase(f.budgets).Execute(ctx, budget.SetBudgetInput{
			ActorID: "admin", IsAdmin: true, TargetUserID: &target, TargetUsername: &name, Amount: 250,
		})
		require.NoError(t, err)

		record := f.budgets.Record("u2")
		require.NotNil(t, record)
		assert.Equal(t, "bob", record.Username)
	})
}

func TestSetMonthlyBudgetUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := budget.NewSetMonthlyBudgetUseCase(f.budgets)

	t.Run("rejects malformed month", func(t *testing.T) {
		_, err := uc.Execute(ctx, budget.SetMonthlyBudgetInput{ActorID: "u1", Month: "2024-13", Amount: 10})
		assert.ErrorIs(t, err, domainerror.ErrInvalidMonth)
	})

	t.Run("override drives the summary", func(t *testing.T) {
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		_, err := uc.Execute(ctx, budget.SetMonthlyBudgetInput{ActorID: "u1", Month: "2024-06", Amount: 2000})
		require.NoError(t, err)
		f.addExpense(t, "u1", 500, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC))

		out, err := budget.NewGetSummaryUseCase(f.loader, f.clock).Execute(ctx, budget.GetSummaryInput{ActorID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, 2000.0, out.Summary.Budget)
		assert.Equal(t, 1500.0, out.Summary.Remaining)
		assert.Equal(t, 25.0, out.Summary.Percentage)

		list, err := budget.NewListMonthlyBudgetsUseCase(f.budgets).Execute(ctx, budget.ListMonthlyBudgetsInput{ActorID: "u1"})
		require.NoError(t, err)
		require.Len(t, list.Overrides, 1)
		assert.Equal(t, "2024-06", list.Overrides[0].Month.String())
	})
}

func TestGetSavingsUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
	f.addExpense(t, "u1", 800, time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC))
	f.addExpense(t, "u1", 1200, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))
	f.addExpense(t, "u1", 100, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))

	out, err := budget.NewGetSavingsUseCase(f.loader, f.clock).Execute(ctx, budget.GetSavingsInput{ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.AccumulatedSavings)
	assert.Equal(t, 900.0, out.RemainingThisMonth)
	assert.Equal(t, "2024-06", out.CurrentMonth.String())
}

func TestGetGroupSummaryUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
	require.NoError(t, f.budgets.Upsert(ctx, "u2", "bob", 500))
	f.addExpense(t, "u1", 300, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	f.addExpense(t, "u3", 200, time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC))

	uc := budget.NewGetGroupSummaryUseCase(f.loader, f.clock)

	t.Run("requires admin", func(t *testing.T) {
		_, err := uc.Execute(ctx, budget.GetGroupSummaryInput{})
		assert.ErrorIs(t, err, domainerror.ErrAdminRequired)
	})

	t.Run("sums members", func(t *testing.T) {
		out, err := uc.Execute(ctx, budget.GetGroupSummaryInput{IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, 1500.0, out.Summary.Budget)
		assert.Equal(t, 500.0, out.Summary.Spent)
		assert.Len(t, out.Members, 3)
	})
}
