// Package alert contains the budget alert passes: threshold alerts and the
// end-of-month reset reminder.
package alert

import (
	"context"
	"fmt"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// Warning and critical thresholds in percent of the effective budget.
const (
	WarningThreshold  = 80.0
	CriticalThreshold = 100.0
)

// Kind is the alert to deliver in a tick.
type Kind int

const (
	KindNone Kind = iota
	KindWarning
	KindCritical
)

// Decision is the outcome of evaluating one user in one tick.
type Decision struct {
	Kind Kind
	Next entity.AlertLevel
}

// Evaluate applies the transition table to the current month's level and
// the uncapped percentage. ok is false when no percentage exists.
//
//	NONE -> 80  when 80 <= pct < 100
//	NONE -> 100 when pct >= 100
//	80   -> 100 when pct >= 100
//
// Levels never go down inside a month.
func Evaluate(level entity.AlertLevel, percentage float64, ok bool) Decision {
	if !ok {
		return Decision{Kind: KindNone, Next: level}
	}

	if percentage >= CriticalThreshold && level != entity.AlertLevelCritical {
		return Decision{Kind: KindCritical, Next: entity.AlertLevelCritical}
	}

	if percentage >= WarningThreshold && level == entity.AlertLevelNone {
		return Decision{Kind: KindWarning, Next: entity.AlertLevelWarning}
	}

	return Decision{Kind: KindNone, Next: level}
}

// Message builds the direct message for a decision. Amounts are in the base
// currency and rendered through formatter.
func Message(ctx context.Context, formatter adapter.MoneyFormatter, kind Kind, budget, spent, percentage float64) string {
	switch kind {
	case KindCritical:
		return fmt.Sprintf(
			"🚨 **CRITICAL ALERT:** You have exceeded your monthly budget of **%s**!\nTotal Spent: **%s** (%.1f%%)",
			formatter.Format(ctx, budget),
			formatter.Format(ctx, spent),
			percentage,
		)
	case KindWarning:
		return fmt.Sprintf(
			"⚠️ **BUDGET WARNING:** You have used **%.1f%%** of your budget (%s).\nRemaining: **%s**",
			percentage,
			formatter.Format(ctx, budget),
			formatter.Format(ctx, budget-spent),
		)
	default:
		return ""
	}
}

// ResetReminderMessage is sent when three days remain in the month.
const ResetReminderMessage = "📅 **Budget Reset Incoming!**\nYour monthly budget will reset in **3 days**. Make sure to review your spending!"

// ResetReminderDaysLeft is the number of remaining days that triggers the
// reminder.
const ResetReminderDaysLeft = 3
