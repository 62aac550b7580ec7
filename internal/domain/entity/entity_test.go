package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spendsync/backend/internal/domain/valueobject"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"Food", CategoryFood, true},
		{"food", CategoryFood, true},
		{" ENTERTAINMENT ", CategoryEntertainment, true},
		{"utilities", CategoryUtilities, true},
		{"groceries", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}

	if !CategoryHousing.IsValid() {
		t.Error("expected Housing to be valid")
	}
	if Category("housing").IsValid() {
		t.Error("expected non-canonical casing to be invalid until parsed")
	}
}

func TestRecurringExpense_ToExpense(t *testing.T) {
	userID, username := "u1", "alice"
	tpl := NewRecurringExpense(50000, CategoryHousing, "Rent", 1, &userID, &username)
	now := time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC)

	exp := tpl.ToExpense(now)

	if exp.Title != "Rent (Recurring)" {
		t.Errorf("expected recurring title, got %q", exp.Title)
	}
	if exp.Amount != 50000 || exp.Category != CategoryHousing {
		t.Errorf("unexpected amount/category: %v %v", exp.Amount, exp.Category)
	}
	if !exp.Date.Equal(now) {
		t.Errorf("expected date %v, got %v", now, exp.Date)
	}
	if exp.ReceiptURL != nil {
		t.Error("expected no receipt on generated expense")
	}
	if !exp.BelongsTo("u1") || exp.OwnerName() != "alice" {
		t.Error("expected owner copied from template")
	}
}

func TestRecurringExpense_Watermark(t *testing.T) {
	tpl := &RecurringExpense{DayOfMonth: 15}
	if tpl.GeneratedOn("2024-06-15") {
		t.Error("nil watermark must not match")
	}
	day := "2024-06-15"
	tpl.LastGeneratedDate = &day
	if !tpl.GeneratedOn("2024-06-15") {
		t.Error("expected watermark match")
	}
	if tpl.GeneratedOn("2024-07-15") {
		t.Error("expected different day not to match")
	}
	if !tpl.DueOn(15) || tpl.DueOn(16) {
		t.Error("DueOn mismatch")
	}
}

func TestBudgetRecord_AlertStateFor(t *testing.T) {
	may := valueobject.Month{Year: 2024, Month: time.May}
	june := valueobject.Month{Year: 2024, Month: time.June}

	rec := NewBudgetRecord("u1", "alice", 1000000)
	if !rec.NeedsMonthReset(june) {
		t.Error("expected reset when no month recorded")
	}

	rec.LastAlertLevel = AlertLevelWarning
	rec.LastAlertMonth = &may
	if got := rec.AlertStateFor(june); got != AlertLevelNone {
		t.Errorf("expected stale month to read as NONE, got %s", got)
	}
	if got := rec.AlertStateFor(may); got != AlertLevelWarning {
		t.Errorf("expected 80 in May, got %s", got)
	}
}

func TestAlertLevel_Rank(t *testing.T) {
	if !(AlertLevelNone.Rank() < AlertLevelWarning.Rank() && AlertLevelWarning.Rank() < AlertLevelCritical.Rank()) {
		t.Error("expected NONE < 80 < 100")
	}
	if ParseAlertLevel("garbage") != AlertLevelNone {
		t.Error("expected unknown level to parse as NONE")
	}
	if ParseAlertLevel("100") != AlertLevelCritical {
		t.Error("expected 100 to parse as critical")
	}
}

func TestJobRun_Record(t *testing.T) {
	run := NewJobRun(JobRecurring, time.Now())
	run.Record(ItemResult{ItemID: "a", Status: ItemGenerated})
	run.Record(ItemResult{ItemID: "b", Status: ItemSkipped})
	run.Record(ItemResult{ItemID: "c", Status: ItemFailed, Err: errors.New("boom")})

	if run.Processed != 3 || run.Succeeded != 1 || run.Skipped != 1 || run.Failed != 1 {
		t.Errorf("unexpected counters: %+v", run)
	}
	if len(run.FailedItemIDs) != 1 || run.FailedItemIDs[0] != "c" {
		t.Errorf("unexpected failed ids: %v", run.FailedItemIDs)
	}
	if !run.HasFailures() {
		t.Error("expected failures")
	}
}

func TestEmailJob_MarkFailed(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	job := NewJobReportEmail(NewJobRun(JobRecurring, now), "ops@example.com", "report", nil, now)
	if !strings.HasPrefix(job.DedupeKey, "job_report:") || job.MaxAttempts != DefaultEmailAttempts {
		t.Fatalf("unexpected new email: %+v", job)
	}
	job.Claim(now)
	if job.Status != EmailStatusProcessing || job.ClaimedAt == nil {
		t.Fatalf("expected claimed email, got %s", job.Status)
	}

	job.MarkFailed(errors.New("timeout"), false, now)
	if job.Status != EmailStatusPending || job.Attempts != 1 || job.ClaimedAt != nil {
		t.Fatalf("expected pending retry after first failure, got %s/%d", job.Status, job.Attempts)
	}
	if !job.ScheduledAt.Equal(now.Add(time.Minute)) {
		t.Errorf("expected retry in 1m, got %v", job.ScheduledAt)
	}

	job.MarkFailed(errors.New("timeout"), false, now)
	if !job.ScheduledAt.Equal(now.Add(5 * time.Minute)) {
		t.Errorf("expected retry in 5m, got %v", job.ScheduledAt)
	}

	job.MarkFailed(errors.New("timeout"), false, now)
	if job.Status != EmailStatusFailed || job.CanRetry() {
		t.Errorf("expected failed after max attempts, got %s", job.Status)
	}
}

func TestEmailJob_PermanentFailure(t *testing.T) {
	now := time.Now()
	run := NewJobRun(JobBudgetAlerts, now)
	job := NewJobReportEmail(run, "ops@example.com", "report", nil, now)
	if job.DedupeKey != JobReportDedupeKey(run.ID) {
		t.Errorf("unexpected dedupe key %q", job.DedupeKey)
	}
	job.MarkFailed(errors.New("422 validation"), true, now)
	if job.Status != EmailStatusFailed || job.ProcessedAt == nil {
		t.Error("expected permanent failure to end the job")
	}
}
