package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// NotifyUpcomingUseCase sends each user one direct message listing their
// templates that fall due tomorrow.
type NotifyUpcomingUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	notifier      adapter.Notifier
	formatter     adapter.MoneyFormatter
	clock         adapter.Clock
}

// NewNotifyUpcomingUseCase creates a new NotifyUpcomingUseCase instance.
func NewNotifyUpcomingUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	notifier adapter.Notifier,
	formatter adapter.MoneyFormatter,
	clock adapter.Clock,
) *NotifyUpcomingUseCase {
	return &NotifyUpcomingUseCase{
		recurringRepo: recurringRepo,
		notifier:      notifier,
		formatter:     formatter,
		clock:         clock,
	}
}

// Execute runs one upcoming-bills pass. Templates without an owner are
// ignored.
func (uc *NotifyUpcomingUseCase) Execute(ctx context.Context) (*entity.JobRun, error) {
	now := uc.clock.Now()
	run := entity.NewJobRun(entity.JobUpcomingBills, now)
	tomorrow := now.AddDate(0, 0, 1).Day()

	templates, err := uc.recurringRepo.ListDueOn(ctx, tomorrow)
	if err != nil {
		run.Finish(uc.clock.Now())
		return run, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	byUser := make(map[string][]*entity.RecurringExpense)
	for _, t := range templates {
		if userID := t.OwnerID(); userID != "" {
			byUser[userID] = append(byUser[userID], t)
		}
	}

	userIDs := make([]string, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		item := entity.ItemResult{ItemID: userID}
		if err := uc.notifier.Send(ctx, userID, uc.message(ctx, byUser[userID])); err != nil {
			slog.Warn("Failed to send upcoming bills reminder",
				"user_id", userID,
				"error", err,
			)
			item.Status = entity.ItemFailed
			item.Err = err
		} else {
			item.Status = entity.ItemSent
			item.Detail = fmt.Sprintf("%d due", len(byUser[userID]))
		}
		run.Record(item)
	}

	run.Finish(uc.clock.Now())
	return run, nil
}

func (uc *NotifyUpcomingUseCase) message(ctx context.Context, items []*entity.RecurringExpense) string {
	var total float64
	lines := make([]string, 0, len(items))
	for _, t := range items {
		total += t.Amount
		lines = append(lines, fmt.Sprintf("• %s (%s)", t.Title, uc.formatter.Format(ctx, t.Amount)))
	}

	return fmt.Sprintf(
		"🔔 **Upcoming Bills Tomorrow**\nYou have %d recurring expenses due tomorrow:\n%s\n\nTotal: **%s**",
		len(items),
		strings.Join(lines, "\n"),
		uc.formatter.Format(ctx, total),
	)
}
