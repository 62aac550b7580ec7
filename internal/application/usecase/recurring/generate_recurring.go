package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// ExpenseRecorder stores a generated expense through the regular expense
// creation path.
type ExpenseRecorder interface {
	Store(ctx context.Context, expense *entity.Expense) error
}

// GenerateRecurringUseCase materialises today's recurring templates into
// expenses. It is safe to run any number of times per day: a template whose
// watermark already equals today's key is skipped.
type GenerateRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	recorder      ExpenseRecorder
	clock         adapter.Clock

	// Serializes passes started from the scheduler, the admin API and the CLI.
	mu sync.Mutex
}

// NewGenerateRecurringUseCase creates a new GenerateRecurringUseCase instance.
func NewGenerateRecurringUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	recorder ExpenseRecorder,
	clock adapter.Clock,
) *GenerateRecurringUseCase {
	return &GenerateRecurringUseCase{
		recurringRepo: recurringRepo,
		recorder:      recorder,
		clock:         clock,
	}
}

// Execute runs one generation pass. A failing template is recorded and the
// pass moves on; the error return is reserved for the template listing.
func (uc *GenerateRecurringUseCase) Execute(ctx context.Context) (*entity.JobRun, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock.Now()
	run := entity.NewJobRun(entity.JobRecurring, now)
	dayKey := valueobject.DayKey(now)

	templates, err := uc.recurringRepo.ListDueOn(ctx, now.Day())
	if err != nil {
		run.Finish(uc.clock.Now())
		return run, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	for _, t := range templates {
		run.Record(uc.generate(ctx, t, now, dayKey))
	}

	run.Finish(uc.clock.Now())

	slog.Info("Recurring expense pass finished",
		"day", dayKey,
		"due", len(templates),
		"generated", run.Succeeded,
		"skipped", run.Skipped,
		"failed", run.Failed,
	)

	return run, nil
}

func (uc *GenerateRecurringUseCase) generate(ctx context.Context, t *entity.RecurringExpense, now time.Time, dayKey string) entity.ItemResult {
	item := entity.ItemResult{ItemID: t.ID.String()}

	if t.GeneratedOn(dayKey) {
		item.Status = entity.ItemSkipped
		item.Detail = "already generated on " + dayKey
		return item
	}

	expense := t.ToExpense(now)
	if err := uc.recorder.Store(ctx, expense); err != nil {
		slog.Error("Failed to generate recurring expense",
			"recurring_id", t.ID,
			"error", err,
		)
		item.Status = entity.ItemFailed
		item.Detail = "expense not created"
		item.Err = err
		return item
	}

	if err := uc.recurringRepo.MarkGenerated(ctx, t.ID, dayKey); err != nil {
		slog.Error("Failed to store recurring watermark",
			"recurring_id", t.ID,
			"expense_id", expense.ID,
			"error", err,
		)
		item.Status = entity.ItemFailed
		item.Detail = "expense " + expense.ID.String() + " created but watermark not stored"
		item.Err = err
		return item
	}

	item.Status = entity.ItemGenerated
	item.Detail = "expense " + expense.ID.String()
	return item
}
