package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/alert"
	"github.com/spendsync/backend/internal/application/usecase/budget"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		level    entity.AlertLevel
		pct      float64
		ok       bool
		wantKind alert.Kind
		wantNext entity.AlertLevel
	}{
		{"below warning", entity.AlertLevelNone, 79.9, true, alert.KindNone, entity.AlertLevelNone},
		{"warning at 80", entity.AlertLevelNone, 80, true, alert.KindWarning, entity.AlertLevelWarning},
		{"warning already sent", entity.AlertLevelWarning, 95, true, alert.KindNone, entity.AlertLevelWarning},
		{"critical skips warning", entity.AlertLevelNone, 130, true, alert.KindCritical, entity.AlertLevelCritical},
		{"critical after warning", entity.AlertLevelWarning, 100, true, alert.KindCritical, entity.AlertLevelCritical},
		{"critical already sent", entity.AlertLevelCritical, 150, true, alert.KindNone, entity.AlertLevelCritical},
		{"no downgrade", entity.AlertLevelCritical, 10, true, alert.KindNone, entity.AlertLevelCritical},
		{"no budget", entity.AlertLevelNone, 0, false, alert.KindNone, entity.AlertLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alert.Evaluate(tt.level, tt.pct, tt.ok)
			if got.Kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, got.Kind)
			}
			if got.Next != tt.wantNext {
				t.Errorf("expected next level %s, got %s", tt.wantNext, got.Next)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	ctx := context.Background()
	f := memory.Formatter{}

	critical := alert.Message(ctx, f, alert.KindCritical, 1000, 1200, 120)
	assert.Equal(t, "🚨 **CRITICAL ALERT:** You have exceeded your monthly budget of **$1000**!\nTotal Spent: **$1200** (120.0%)", critical)

	warning := alert.Message(ctx, f, alert.KindWarning, 1000, 850, 85)
	assert.Equal(t, "⚠️ **BUDGET WARNING:** You have used **85.0%** of your budget ($1000).\nRemaining: **$150**", warning)
}

type alertFixture struct {
	budgets  *memory.BudgetStore
	expenses *memory.ExpenseStore
	notifier *memory.Notifier
	clock    *memory.Clock
	uc       *alert.CheckAlertsUseCase
}

func newAlertFixture(now time.Time) *alertFixture {
	f := &alertFixture{
		budgets:  memory.NewBudgetStore(),
		expenses: memory.NewExpenseStore(),
		notifier: memory.NewNotifier(),
		clock:    memory.NewClock(now),
	}
	loader := budget.NewLedgerLoader(f.budgets, f.expenses)
	f.uc = alert.NewCheckAlertsUseCase(f.budgets, loader, f.notifier, memory.Formatter{}, f.clock)
	return f
}

func (f *alertFixture) spend(t *testing.T, userID string, amount float64) {
	t.Helper()
	uid := userID
	e := entity.NewExpense(amount, entity.CategoryFood, "", f.clock.Now(), &uid, nil, nil)
	require.NoError(t, f.expenses.Create(context.Background(), e))
}

func TestCheckAlertsUseCase(t *testing.T) {
	ctx := context.Background()
	june := valueobject.Month{Year: 2024, Month: time.June}

	t.Run("walks NONE to 80 to 100 once each", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))

		f.spend(t, "u1", 850)
		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, f.notifier.SentTo("u1"), 1)
		assert.Equal(t, entity.AlertLevelWarning, f.budgets.Record("u1").LastAlertLevel)

		_, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, f.notifier.SentTo("u1"), 1)

		f.spend(t, "u1", 350)
		_, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		msgs := f.notifier.SentTo("u1")
		require.Len(t, msgs, 2)
		assert.Contains(t, msgs[1], "(120.0%)")
		assert.Equal(t, entity.AlertLevelCritical, f.budgets.Record("u1").LastAlertLevel)

		_, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, f.notifier.SentTo("u1"), 2)
	})

	t.Run("failed delivery keeps state and retries next tick", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		require.NoError(t, f.budgets.UpsertAlertState(ctx, "u1", entity.AlertLevelNone, june))
		f.spend(t, "u1", 900)
		f.notifier.FailFor["u1"] = true

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, run.FailedItemIDs)
		assert.Equal(t, entity.AlertLevelNone, f.budgets.Record("u1").LastAlertLevel)

		f.notifier.FailFor["u1"] = false
		_, err = f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, f.notifier.SentTo("u1"), 1)
		assert.Equal(t, entity.AlertLevelWarning, f.budgets.Record("u1").LastAlertLevel)
	})

	t.Run("new month resets the watermark first", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.July, 1, 0, 30, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		require.NoError(t, f.budgets.UpsertAlertState(ctx, "u1", entity.AlertLevelCritical, june))
		f.spend(t, "u1", 100)

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, run.Succeeded)
		assert.Empty(t, f.notifier.Sent)

		record := f.budgets.Record("u1")
		assert.Equal(t, entity.AlertLevelNone, record.LastAlertLevel)
		require.NotNil(t, record.LastAlertMonth)
		assert.Equal(t, "2024-07", record.LastAlertMonth.String())
	})

	t.Run("stale critical state does not suppress the new month", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.July, 2, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		require.NoError(t, f.budgets.UpsertAlertState(ctx, "u1", entity.AlertLevelCritical, june))
		f.spend(t, "u1", 1100)

		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		msgs := f.notifier.SentTo("u1")
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "CRITICAL ALERT")
	})

	t.Run("failed reset skips the user", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.July, 2, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		require.NoError(t, f.budgets.Upsert(ctx, "u2", "bob", 1000))
		f.spend(t, "u1", 1100)
		f.spend(t, "u2", 1100)
		f.budgets.FailAlertWrite["u1"] = true

		run, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, run.FailedItemIDs)
		assert.Empty(t, f.notifier.SentTo("u1"))
		assert.Len(t, f.notifier.SentTo("u2"), 1)
	})

	t.Run("zero budget never alerts", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.EnsureExists(ctx, "u1", "alice"))
		f.spend(t, "u1", 5000)

		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, f.notifier.Attempts)
	})

	t.Run("monthly override is the effective budget", func(t *testing.T) {
		f := newAlertFixture(time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, f.budgets.Upsert(ctx, "u1", "alice", 1000))
		require.NoError(t, f.budgets.UpsertMonthlyBudget(ctx, "u1", june, 2000))
		f.spend(t, "u1", 1100)

		_, err := f.uc.Execute(ctx)
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Sent)
	})
}

func TestResetReminderUseCase(t *testing.T) {
	ctx := context.Background()
	budgets := memory.NewBudgetStore()
	require.NoError(t, budgets.Upsert(ctx, "u1", "alice", 1000))
	require.NoError(t, budgets.Upsert(ctx, "u2", "bob", 0))
	notifier := memory.NewNotifier()
	clock := memory.NewClock(time.Date(2024, time.June, 26, 0, 1, 0, 0, time.UTC))
	uc := alert.NewResetReminderUseCase(budgets, notifier, clock)

	t.Run("silent when not three days before month end", func(t *testing.T) {
		run, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, run.Processed)
		assert.Empty(t, notifier.Sent)
	})

	t.Run("reminds every budget owner", func(t *testing.T) {
		clock.Set(time.Date(2024, time.June, 27, 0, 1, 0, 0, time.UTC))
		run, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, run.Succeeded)
		assert.Equal(t, []string{alert.ResetReminderMessage}, notifier.SentTo("u1"))
	})

	t.Run("leap February", func(t *testing.T) {
		clock.Set(time.Date(2024, time.February, 26, 0, 1, 0, 0, time.UTC))
		run, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, run.Processed)
	})
}
