package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/application/usecase/budget"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// CheckAlertsUseCase runs the hourly threshold alert pass over every budget
// record.
type CheckAlertsUseCase struct {
	budgetRepo adapter.BudgetRepository
	loader     *budget.LedgerLoader
	notifier   adapter.Notifier
	formatter  adapter.MoneyFormatter
	clock      adapter.Clock

	mu sync.Mutex
}

// NewCheckAlertsUseCase creates a new CheckAlertsUseCase instance.
func NewCheckAlertsUseCase(
	budgetRepo adapter.BudgetRepository,
	loader *budget.LedgerLoader,
	notifier adapter.Notifier,
	formatter adapter.MoneyFormatter,
	clock adapter.Clock,
) *CheckAlertsUseCase {
	return &CheckAlertsUseCase{
		budgetRepo: budgetRepo,
		loader:     loader,
		notifier:   notifier,
		formatter:  formatter,
		clock:      clock,
	}
}

// Execute runs one alert pass. Per-user failures are recorded in the run;
// the error return is reserved for loading the ledger.
func (uc *CheckAlertsUseCase) Execute(ctx context.Context) (*entity.JobRun, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock.Now()
	run := entity.NewJobRun(entity.JobBudgetAlerts, now)
	month := valueobject.MonthOf(now)

	ledger, err := uc.loader.LoadAll(ctx, now.Location())
	if err != nil {
		run.Finish(uc.clock.Now())
		return run, fmt.Errorf("failed to load budgets: %w", err)
	}

	for _, record := range ledger.Records() {
		run.Record(uc.checkUser(ctx, ledger, record, month))
	}

	run.Finish(uc.clock.Now())

	slog.Info("Budget alert pass finished",
		"month", month.String(),
		"users", run.Processed,
		"sent", run.Succeeded,
		"failed", run.Failed,
	)

	return run, nil
}

func (uc *CheckAlertsUseCase) checkUser(ctx context.Context, ledger *budget.Ledger, record *entity.BudgetRecord, month valueobject.Month) entity.ItemResult {
	item := entity.ItemResult{ItemID: record.UserID, Status: entity.ItemSkipped}

	// The monthly reset is persisted before any alert is sent.
	reset := false
	if record.NeedsMonthReset(month) {
		if err := uc.budgetRepo.UpsertAlertState(ctx, record.UserID, entity.AlertLevelNone, month); err != nil {
			slog.Error("Failed to reset alert state",
				"user_id", record.UserID,
				"month", month.String(),
				"error", err,
			)
			item.Status = entity.ItemFailed
			item.Detail = "monthly reset not stored"
			item.Err = err
			return item
		}
		record.LastAlertLevel = entity.AlertLevelNone
		record.LastAlertMonth = &month
		reset = true
		item.Status = entity.ItemReset
	}

	budgetAmount := ledger.EffectiveBudget(record.UserID, month)
	spent := ledger.Spend(record.UserID, month)
	percentage, ok := budget.Percentage(spent, budgetAmount)

	decision := Evaluate(record.AlertStateFor(month), percentage, ok)
	if decision.Kind == KindNone {
		if !reset {
			item.Detail = fmt.Sprintf("level %s unchanged", record.AlertStateFor(month))
		}
		return item
	}

	text := Message(ctx, uc.formatter, decision.Kind, budgetAmount, spent, percentage)
	if err := uc.notifier.Send(ctx, record.UserID, text); err != nil {
		slog.Warn("Failed to deliver budget alert",
			"user_id", record.UserID,
			"level", decision.Next,
			"error", err,
		)
		item.Status = entity.ItemFailed
		item.Detail = "alert " + string(decision.Next) + " not delivered"
		item.Err = err
		return item
	}

	if err := uc.budgetRepo.UpsertAlertState(ctx, record.UserID, decision.Next, month); err != nil {
		slog.Error("Failed to store alert state",
			"user_id", record.UserID,
			"level", decision.Next,
			"error", err,
		)
		item.Status = entity.ItemFailed
		item.Detail = "alert " + string(decision.Next) + " delivered but not stored"
		item.Err = err
		return item
	}

	item.Status = entity.ItemSent
	item.Detail = "alert " + string(decision.Next)
	return item
}
