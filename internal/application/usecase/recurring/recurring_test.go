package recurring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/expense"
	"github.com/spendsync/backend/internal/application/usecase/recurring"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

func strPtr(s string) *string { return &s }

type generatorFixture struct {
	recurring *memory.RecurringStore
	expenses  *memory.ExpenseStore
	budgets   *memory.BudgetStore
	clock     *memory.Clock
	uc        *recurring.GenerateRecurringUseCase
}

func newGeneratorFixture(now time.Time) *generatorFixture {
	f := &generatorFixture{
		recurring: memory.NewRecurringStore(),
		expenses:  memory.NewExpenseStore(),
		budgets:   memory.NewBudgetStore(),
		clock:     memory.NewClock(now),
	}
	creator := expense.NewCreateExpenseUseCase(f.expenses, f.budgets, f.clock)
	f.uc = recurring.NewGenerateRecurringUseCase(f.recurring, creator, f.clock)
	return f
}

func (f *generatorFixture) addTemplate(t *testing.T, title string, day int, userID string) *entity.RecurringExpense {
	t.Helper()
	r := entity.NewRecurringExpense(100, entity.CategoryHousing, title, day, strPtr(userID), strPtr(userID+"-name"))
	require.NoError(t, f.recurring.Create(context.Background(), r))
	return r
}

func TestGenerateRecurringUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("generates due templates once per day", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 15, 0, 1, 0, 0, time.UTC))
		rent := f.addTemplate(t, "Rent", 15, "u1")
		f.addTemplate(t, "Gym", 16, "u1")

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, run.Succeeded)
		assert.Equal(t, []string{"Rent (Recurring)"}, f.expenses.Titles())

		stored, err := f.recurring.FindByID(ctx, rent.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastGeneratedDate)
		assert.Equal(t, "2024-03-15", *stored.LastGeneratedDate)

		f.clock.Set(time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC))
		run, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, run.Skipped)
		assert.Equal(t, 0, run.Succeeded)
		assert.Equal(t, 1, f.expenses.Count())
	})

	t.Run("generates again the next month", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 15, 0, 1, 0, 0, time.UTC))
		f.addTemplate(t, "Rent", 15, "u1")

		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)

		f.clock.Set(time.Date(2024, time.April, 15, 0, 1, 0, 0, time.UTC))
		_, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, f.expenses.Count())
	})

	t.Run("day 31 does not fire in a 30-day month", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.June, 30, 0, 1, 0, 0, time.UTC))
		f.addTemplate(t, "Insurance", 31, "u1")

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, run.Processed)

		f.clock.Set(time.Date(2024, time.July, 1, 0, 1, 0, 0, time.UTC))
		run, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, run.Processed)
		assert.Equal(t, 0, f.expenses.Count())
	})

	t.Run("a failing watermark does not stop other templates", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC))
		broken := f.addTemplate(t, "Phone", 1, "u1")
		f.addTemplate(t, "Internet", 1, "u2")
		f.recurring.FailMark[broken.ID] = true

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, run.Failed)
		assert.Equal(t, 1, run.Succeeded)
		assert.Equal(t, []string{broken.ID.String()}, run.FailedItemIDs)
	})

	t.Run("expense failure leaves watermark empty", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC))
		r := f.addTemplate(t, "Phone", 1, "u1")
		f.expenses.FailCreate = true

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.True(t, run.HasFailures())

		stored, err := f.recurring.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.LastGeneratedDate)
	})

	t.Run("creates the owner's budget record", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC))
		f.addTemplate(t, "Phone", 1, "u9")

		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.NotNil(t, f.budgets.Record("u9"))
	})

	t.Run("listing failure aborts the pass", func(t *testing.T) {
		f := newGeneratorFixture(time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC))
		f.recurring.FailList = true

		run, err := f.uc.Execute(ctx)
		assert.Error(t, err)
		require.NotNil(t, run)
		assert.Equal(t, 0, run.Processed)
	})
}

func TestNotifyUpcomingUseCase(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecurringStore()
	notifier := memory.NewNotifier()
	clock := memory.NewClock(time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC))

	for _, r := range []*entity.RecurringExpense{
		entity.NewRecurringExpense(1200, entity.CategoryHousing, "Rent", 1, strPtr("u1"), nil),
		entity.NewRecurringExpense(50, entity.CategoryUtilities, "Internet", 1, strPtr("u1"), nil),
		entity.NewRecurringExpense(30, entity.CategoryEntertainment, "Streaming", 1, strPtr("u2"), nil),
		entity.NewRecurringExpense(99, entity.CategoryOther, "Orphan", 1, nil, nil),
		entity.NewRecurringExpense(10, entity.CategoryOther, "Later", 2, strPtr("u1"), nil),
	} {
		require.NoError(t, store.Create(ctx, r))
	}

	uc := recurring.NewNotifyUpcomingUseCase(store, notifier, memory.Formatter{}, clock)

	t.Run("groups tomorrow's templates per user", func(t *testing.T) {
		run, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, run.Succeeded)

		msgs := notifier.SentTo("u1")
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "You have 2 recurring expenses due tomorrow:")
		assert.Contains(t, msgs[0], "• Rent ($1200)")
		assert.Contains(t, msgs[0], "• Internet ($50)")
		assert.Contains(t, msgs[0], "Total: **$1250**")
		assert.NotContains(t, msgs[0], "Later")
	})

	t.Run("failed delivery is recorded per user", func(t *testing.T) {
		notifier.FailFor["u2"] = true
		run, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"u2"}, run.FailedItemIDs)
	})
}

func TestCreateAndDeleteRecurring(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecurringStore()
	create := recurring.NewCreateRecurringUseCase(store)
	del := recurring.NewDeleteRecurringUseCase(store)

	t.Run("validates day of month", func(t *testing.T) {
		for _, day := range []int{0, 32} {
			_, err := create.Execute(ctx, recurring.CreateRecurringInput{Amount: 1, Category: "Food", Title: "x", DayOfMonth: day})
			assert.ErrorIs(t, err, domainerror.ErrInvalidDayOfMonth)
		}
	})

	t.Run("owner deletes, others are forbidden", func(t *testing.T) {
		out, err := create.Execute(ctx, recurring.CreateRecurringInput{
			Amount: 10, Category: "housing", Title: "Rent", DayOfMonth: 31, UserID: strPtr("u1"),
		})
		require.NoError(t, err)
		assert.Nil(t, out.Recurring.LastGeneratedDate)

		err = del.Execute(ctx, recurring.DeleteRecurringInput{RecurringID: out.Recurring.ID, ActorID: "u2"})
		var recErr *domainerror.RecurringError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, domainerror.ErrCodeUnauthorizedRecurringAccess, recErr.Code)

		require.NoError(t, del.Execute(ctx, recurring.DeleteRecurringInput{RecurringID: out.Recurring.ID, ActorID: "u1"}))

		list, err := recurring.NewListRecurringUseCase(store).Execute(ctx, recurring.ListRecurringInput{ActorID: "u1"})
		require.NoError(t, err)
		assert.Empty(t, list.Recurring)
	})
}
