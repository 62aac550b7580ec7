// Package memory provides in-memory implementations of the adapter
// interfaces for unit tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// ErrInjected is returned by stores configured to fail.
var ErrInjected = errors.New("injected failure")

// Clock is a settable clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock fixed at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the configured instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// ExpenseStore is an in-memory ExpenseRepository.
type ExpenseStore struct {
	mu         sync.Mutex
	items      map[uuid.UUID]*entity.Expense
	FailCreate bool
}

// NewExpenseStore creates an empty ExpenseStore.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{items: make(map[uuid.UUID]*entity.Expense)}
}

// Create stores a new expense.
func (s *ExpenseStore) Create(_ context.Context, expense *entity.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreate {
		return ErrInjected
	}
	cp := *expense
	s.items[expense.ID] = &cp
	return nil
}

// FindByID retrieves an expense by its ID.
func (s *ExpenseStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

// List retrieves expenses matching the filter, newest first.
func (s *ExpenseStore) List(_ context.Context, filter entity.ExpenseFilter) ([]*entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Expense, 0, len(s.items))
	for _, e := range s.items {
		if filter.UserID != nil && !e.BelongsTo(*filter.UserID) {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.Date.Before(*filter.To) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Update saves the mutable fields of an expense.
func (s *ExpenseStore) Update(_ context.Context, expense *entity.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	cp := *expense
	s.items[expense.ID] = &cp
	return nil
}

// Delete removes an expense.
func (s *ExpenseStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	delete(s.items, id)
	return nil
}

// Count returns the number of stored expenses.
func (s *ExpenseStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Titles returns every stored title, sorted.
func (s *ExpenseStore) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e.Title)
	}
	sort.Strings(out)
	return out
}

// RecurringStore is an in-memory RecurringExpenseRepository.
type RecurringStore struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*entity.RecurringExpense
	FailList bool
	FailMark map[uuid.UUID]bool
}

// NewRecurringStore creates an empty RecurringStore.
func NewRecurringStore() *RecurringStore {
	return &RecurringStore{
		items:    make(map[uuid.UUID]*entity.RecurringExpense),
		FailMark: make(map[uuid.UUID]bool),
	}
}

// Create stores a new recurring template.
func (s *RecurringStore) Create(_ context.Context, recurring *entity.RecurringExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *recurring
	s.items[recurring.ID] = &cp
	return nil
}

// FindByID retrieves a template by its ID.
func (s *RecurringStore) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return nil, domainerror.ErrRecurringNotFound
	}
	cp := *r
	return &cp, nil
}

// List retrieves every template, or only the user's when userID is set.
func (s *RecurringStore) List(_ context.Context, userID *string) ([]*entity.RecurringExpense, error) {
	return s.filter(func(r *entity.RecurringExpense) bool {
		return userID == nil || r.BelongsTo(*userID)
	})
}

// ListDueOn retrieves the templates whose day of month equals day.
func (s *RecurringStore) ListDueOn(_ context.Context, day int) ([]*entity.RecurringExpense, error) {
	return s.filter(func(r *entity.RecurringExpense) bool { return r.DueOn(day) })
}

func (s *RecurringStore) filter(keep func(*entity.RecurringExpense) bool) ([]*entity.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailList {
		return nil, ErrInjected
	}
	out := make([]*entity.RecurringExpense, 0, len(s.items))
	for _, r := range s.items {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MarkGenerated sets the last generated day watermark.
func (s *RecurringStore) MarkGenerated(_ context.Context, id uuid.UUID, dayKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailMark[id] {
		return ErrInjected
	}
	r, ok := s.items[id]
	if !ok {
		return domainerror.ErrRecurringNotFound
	}
	r.LastGeneratedDate = &dayKey
	return nil
}

// Delete removes a template.
func (s *RecurringStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domainerror.ErrRecurringNotFound
	}
	delete(s.items, id)
	return nil
}

// BudgetStore is an in-memory BudgetRepository.
type BudgetStore struct {
	mu             sync.Mutex
	records        map[string]*entity.BudgetRecord
	overrides      map[string]map[valueobject.Month]float64
	FailAlertWrite map[string]bool
	AlertWrites    int
}

// NewBudgetStore creates an empty BudgetStore.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		records:        make(map[string]*entity.BudgetRecord),
		overrides:      make(map[string]map[valueobject.Month]float64),
		FailAlertWrite: make(map[string]bool),
	}
}

// List retrieves every budget record.
func (s *BudgetStore) List(_ context.Context) ([]*entity.BudgetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.BudgetRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, copyRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// FindByUserID retrieves the budget record of a user.
func (s *BudgetStore) FindByUserID(_ context.Context, userID string) (*entity.BudgetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[userID]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return copyRecord(r), nil
}

// Upsert sets the default budget amount and username.
func (s *BudgetStore) Upsert(_ context.Context, userID, username string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[userID]
	if !ok {
		s.records[userID] = entity.NewBudgetRecord(userID, username, amount)
		return nil
	}
	r.Amount = amount
	if username != "" {
		r.Username = username
	}
	return nil
}

// EnsureExists creates a zero-amount record when the user has none.
func (s *BudgetStore) EnsureExists(_ context.Context, userID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[userID]; !ok {
		s.records[userID] = entity.NewBudgetRecord(userID, username, 0)
	}
	return nil
}

// UpsertAlertState stores the alert watermark for a user.
func (s *BudgetStore) UpsertAlertState(_ context.Context, userID string, level entity.AlertLevel, month valueobject.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAlertWrite[userID] {
		return ErrInjected
	}
	r, ok := s.records[userID]
	if !ok {
		r = entity.NewBudgetRecord(userID, "", 0)
		s.records[userID] = r
	}
	m := month
	r.LastAlertLevel = level
	r.LastAlertMonth = &m
	s.AlertWrites++
	return nil
}

// ListMonthlyBudgets retrieves overrides, all users when userID is nil.
func (s *BudgetStore) ListMonthlyBudgets(_ context.Context, userID *string) ([]*entity.MonthlyBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.MonthlyBudget
	for uid, byMonth := range s.overrides {
		if userID != nil && *userID != uid {
			continue
		}
		for m, amount := range byMonth {
			out = append(out, &entity.MonthlyBudget{UserID: uid, Month: m, Amount: amount})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

// UpsertMonthlyBudget sets the override for (userID, month).
func (s *BudgetStore) UpsertMonthlyBudget(_ context.Context, userID string, month valueobject.Month, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overrides[userID] == nil {
		s.overrides[userID] = make(map[valueobject.Month]float64)
	}
	s.overrides[userID][month] = amount
	return nil
}

// Record returns a copy of the stored record, or nil.
func (s *BudgetStore) Record(userID string) *entity.BudgetRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[userID]
	if !ok {
		return nil
	}
	return copyRecord(r)
}

func copyRecord(r *entity.BudgetRecord) *entity.BudgetRecord {
	cp := *r
	if r.LastAlertMonth != nil {
		m := *r.LastAlertMonth
		cp.LastAlertMonth = &m
	}
	return &cp
}

// Message is one delivered direct message.
type Message struct {
	UserID string
	Text   string
}

// Notifier records direct messages and fails for configured users.
type Notifier struct {
	mu       sync.Mutex
	Sent     []Message
	FailFor  map[string]bool
	Attempts int
}

// NewNotifier creates a Notifier that delivers everything.
func NewNotifier() *Notifier {
	return &Notifier{FailFor: make(map[string]bool)}
}

// Send records the message unless userID is configured to fail.
func (n *Notifier) Send(_ context.Context, userID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Attempts++
	if n.FailFor[userID] {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeMessageSendFailed,
			"failed to send direct message",
			domainerror.ErrNotificationNotDelivered,
		)
	}
	n.Sent = append(n.Sent, Message{UserID: userID, Text: text})
	return nil
}

// SentTo returns the messages delivered to userID.
func (n *Notifier) SentTo(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.Sent {
		if m.UserID == userID {
			out = append(out, m.Text)
		}
	}
	return out
}

// Formatter renders amounts as "$" followed by the plain number.
type Formatter struct{}

// Format renders amount without conversion.
func (Formatter) Format(_ context.Context, amount float64) string {
	s := strings.TrimRight(strings.TrimRight(strconv.FormatFloat(amount, 'f', 2, 64), "0"), ".")
	return "$" + s
}

// DisplayCurrency returns USD.
func (Formatter) DisplayCurrency() string {
	return "USD"
}

// JobRunStore is an in-memory JobRunRepository.
type JobRunStore struct {
	mu   sync.Mutex
	Runs []*entity.JobRun
}

// NewJobRunStore creates an empty JobRunStore.
func NewJobRunStore() *JobRunStore {
	return &JobRunStore{}
}

// Create stores a finished run.
func (s *JobRunStore) Create(_ context.Context, run *entity.JobRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Runs = append(s.Runs, run)
	return nil
}

// ListRecent retrieves the latest runs, newest first.
func (s *JobRunStore) ListRecent(_ context.Context, limit int) ([]*entity.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.JobRun, 0, len(s.Runs))
	for i := len(s.Runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.Runs[i])
	}
	return out, nil
}

// LastByJob retrieves the latest run of each job.
func (s *JobRunStore) LastByJob(_ context.Context) (map[entity.JobName]*entity.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[entity.JobName]*entity.JobRun)
	for _, r := range s.Runs {
		out[r.Job] = r
	}
	return out, nil
}

// EmailService records queued job reports.
type EmailService struct {
	mu      sync.Mutex
	Reports []*entity.JobRun
}

// QueueJobReport records run.
func (s *EmailService) QueueJobReport(_ context.Context, run *entity.JobRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reports = append(s.Reports, run)
	return nil
}
