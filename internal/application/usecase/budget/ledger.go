// Package budget contains the budget model and budget-related use cases.
package budget

import (
	"sort"
	"strings"
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// Summary is the budget position of one user (or the group) in one month.
type Summary struct {
	Month      valueobject.Month
	Budget     float64
	Spent      float64
	Remaining  float64
	Percentage float64
	Count      int
}

// Member is one distinct person counted in the group budget.
type Member struct {
	UserID   string
	Username string
	Budget   float64
	Spent    float64
}

// Ledger is an in-memory snapshot of budgets, overrides and expenses. All
// month bucketing happens in loc.
type Ledger struct {
	loc       *time.Location
	records   map[string]*entity.BudgetRecord
	overrides map[string]map[valueobject.Month]float64
	expenses  []*entity.Expense
}

// NewLedger builds a Ledger from store rows.
func NewLedger(loc *time.Location, records []*entity.BudgetRecord, overrides []*entity.MonthlyBudget, expenses []*entity.Expense) *Ledger {
	if loc == nil {
		loc = time.Local
	}

	l := &Ledger{
		loc:       loc,
		records:   make(map[string]*entity.BudgetRecord, len(records)),
		overrides: make(map[string]map[valueobject.Month]float64),
		expenses:  expenses,
	}

	for _, r := range records {
		if r == nil || r.UserID == "" {
			continue
		}
		l.records[r.UserID] = r
	}

	for _, o := range overrides {
		if o == nil {
			continue
		}
		if l.overrides[o.UserID] == nil {
			l.overrides[o.UserID] = make(map[valueobject.Month]float64)
		}
		l.overrides[o.UserID][o.Month] = o.Amount
	}

	return l
}

// Location returns the zone months are bucketed in.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Record returns the user's budget record, if any.
func (l *Ledger) Record(userID string) (*entity.BudgetRecord, bool) {
	r, ok := l.records[userID]
	return r, ok
}

// Records returns every budget record ordered by user ID.
func (l *Ledger) Records() []*entity.BudgetRecord {
	out := make([]*entity.BudgetRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// EffectiveBudget returns the override for month when present, else the
// default budget, else 0.
func (l *Ledger) EffectiveBudget(userID string, month valueobject.Month) float64 {
	if byMonth, ok := l.overrides[userID]; ok {
		if amount, ok := byMonth[month]; ok {
			return amount
		}
	}
	if r, ok := l.records[userID]; ok {
		return r.Amount
	}
	return 0
}

// Spend sums the user's expenses dated inside month.
func (l *Ledger) Spend(userID string, month valueobject.Month) float64 {
	spent, _ := l.spend(userID, month)
	return spent
}

func (l *Ledger) spend(userID string, month valueobject.Month) (float64, int) {
	var total float64
	var count int
	for _, e := range l.expenses {
		if !e.BelongsTo(userID) || !month.Contains(e.Date, l.loc) {
			continue
		}
		total += e.Amount
		count++
	}
	return total, count
}

// Summary returns budget, spend, remaining and the capped percentage.
func (l *Ledger) Summary(userID string, month valueobject.Month) Summary {
	budget := l.EffectiveBudget(userID, month)
	spent, count := l.spend(userID, month)
	return newSummary(month, budget, spent, count)
}

// AccumulatedSavings sums (effective budget - spend) over every closed month
// from the user's first expense up to, but excluding, the month of now.
// Past months without an override use the current default budget.
func (l *Ledger) AccumulatedSavings(userID string, now time.Time) float64 {
	first, ok := l.firstExpenseMonth(userID)
	if !ok {
		return 0
	}

	current := valueobject.MonthOf(now.In(l.loc))
	var savings float64
	for m := first; m.Before(current); m = m.Next() {
		savings += l.EffectiveBudget(userID, m) - l.Spend(userID, m)
	}
	return savings
}

// RemainingThisMonth is the open month's effective budget minus its spend.
func (l *Ledger) RemainingThisMonth(userID string, now time.Time) float64 {
	current := valueobject.MonthOf(now.In(l.loc))
	return l.EffectiveBudget(userID, current) - l.Spend(userID, current)
}

// History returns one summary per month in which the user has expenses or
// an override, newest first.
func (l *Ledger) History(userID string) []Summary {
	months := make(map[valueobject.Month]struct{})
	for _, e := range l.expenses {
		if e.BelongsTo(userID) {
			months[valueobject.MonthOf(e.Date.In(l.loc))] = struct{}{}
		}
	}
	for m := range l.overrides[userID] {
		months[m] = struct{}{}
	}

	out := make([]Summary, 0, len(months))
	for m := range months {
		out = append(out, l.Summary(userID, m))
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Month.Before(out[i].Month) })
	return out
}

// Members returns the distinct people that make up the group: everyone with
// a budget record or at least one expense. Expenses without a user ID are
// matched to a known person by case-insensitive username.
func (l *Ledger) Members(month valueobject.Month) []Member {
	byKey := make(map[string]*Member)
	byName := make(map[string]string)

	add := func(key, userID, username string) *Member {
		if m, ok := byKey[key]; ok {
			if m.Username == "" {
				m.Username = username
			}
			return m
		}
		m := &Member{UserID: userID, Username: username}
		byKey[key] = m
		if name := strings.ToLower(strings.TrimSpace(username)); name != "" {
			if _, taken := byName[name]; !taken {
				byName[name] = key
			}
		}
		return m
	}

	for _, r := range l.Records() {
		add(r.UserID, r.UserID, r.Username)
	}

	var anonymous []*entity.Expense
	for _, e := range l.expenses {
		if e.UserID == nil || *e.UserID == "" {
			anonymous = append(anonymous, e)
			continue
		}
		add(*e.UserID, *e.UserID, e.OwnerName())
	}

	for _, e := range anonymous {
		name := strings.ToLower(strings.TrimSpace(e.OwnerName()))
		if name == "" {
			continue
		}
		key, ok := byName[name]
		if !ok {
			key = "name:" + name
		}
		m := add(key, "", e.OwnerName())
		if month.Contains(e.Date, l.loc) {
			m.Spent += e.Amount
		}
	}

	out := make([]Member, 0, len(byKey))
	for _, m := range byKey {
		if m.UserID != "" {
			m.Budget = l.EffectiveBudget(m.UserID, month)
			m.Spent += l.Spend(m.UserID, month)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out
}

// GroupSummary sums budgets and spend over every group member.
func (l *Ledger) GroupSummary(month valueobject.Month) (Summary, []Member) {
	members := l.Members(month)

	var budget, spent float64
	for _, m := range members {
		budget += m.Budget
		spent += m.Spent
	}

	var count int
	for _, e := range l.expenses {
		if month.Contains(e.Date, l.loc) {
			count++
		}
	}

	return newSummary(month, budget, spent, count), members
}

func (l *Ledger) firstExpenseMonth(userID string) (valueobject.Month, bool) {
	var first time.Time
	found := false
	for _, e := range l.expenses {
		if !e.BelongsTo(userID) {
			continue
		}
		if !found || e.Date.Before(first) {
			first = e.Date
			found = true
		}
	}
	if !found {
		return valueobject.Month{}, false
	}
	return valueobject.MonthOf(first.In(l.loc)), true
}

// Percentage returns spent/budget*100 uncapped. ok is false when the budget
// is zero, negative or not a number, in which case no percentage exists.
func Percentage(spent, budget float64) (float64, bool) {
	if !(budget > 0) {
		return 0, false
	}
	return spent / budget * 100, true
}

func newSummary(month valueobject.Month, budget, spent float64, count int) Summary {
	pct, ok := Percentage(spent, budget)
	if !ok {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Summary{
		Month:      month,
		Budget:     budget,
		Spent:      spent,
		Remaining:  budget - spent,
		Percentage: pct,
		Count:      count,
	}
}
