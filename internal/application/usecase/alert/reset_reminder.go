package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// ResetReminderUseCase tells every user with a budget record that the month
// is about to roll over.
type ResetReminderUseCase struct {
	budgetRepo adapter.BudgetRepository
	notifier   adapter.Notifier
	clock      adapter.Clock
}

// NewResetReminderUseCase creates a new ResetReminderUseCase instance.
func NewResetReminderUseCase(budgetRepo adapter.BudgetRepository, notifier adapter.Notifier, clock adapter.Clock) *ResetReminderUseCase {
	return &ResetReminderUseCase{
		budgetRepo: budgetRepo,
		notifier:   notifier,
		clock:      clock,
	}
}

// Execute sends the reminder only when exactly three days remain in the
// month. On any other day the run is empty.
func (uc *ResetReminderUseCase) Execute(ctx context.Context) (*entity.JobRun, error) {
	now := uc.clock.Now()
	run := entity.NewJobRun(entity.JobResetReminder, now)

	if valueobject.DaysRemaining(now) != ResetReminderDaysLeft {
		run.Finish(uc.clock.Now())
		return run, nil
	}

	records, err := uc.budgetRepo.List(ctx)
	if err != nil {
		run.Finish(uc.clock.Now())
		return run, fmt.Errorf("failed to list budgets: %w", err)
	}

	for _, record := range records {
		if record.UserID == "" {
			continue
		}

		item := entity.ItemResult{ItemID: record.UserID, Status: entity.ItemSent}
		if err := uc.notifier.Send(ctx, record.UserID, ResetReminderMessage); err != nil {
			slog.Warn("Failed to send reset reminder",
				"user_id", record.UserID,
				"error", err,
			)
			item.Status = entity.ItemFailed
			item.Err = err
		}
		run.Record(item)
	}

	run.Finish(uc.clock.Now())
	return run, nil
}
