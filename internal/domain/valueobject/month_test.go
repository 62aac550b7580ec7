package valueobject

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Month
		wantErr bool
	}{
		{name: "valid", input: "2024-06", want: Month{Year: 2024, Month: time.June}},
		{name: "january", input: "2025-01", want: Month{Year: 2025, Month: time.January}},
		{name: "missing month", input: "2024", wantErr: true},
		{name: "out of range", input: "2024-13", wantErr: true},
		{name: "full date", input: "2024-06-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.String() != tt.input {
				t.Errorf("expected round trip %q, got %q", tt.input, got.String())
			}
		})
	}
}

func TestMonth_NextAndBefore(t *testing.T) {
	dec := Month{Year: 2024, Month: time.December}
	jan := dec.Next()

	if jan != (Month{Year: 2025, Month: time.January}) {
		t.Fatalf("expected 2025-01, got %s", jan)
	}
	if !dec.Before(jan) {
		t.Error("expected 2024-12 before 2025-01")
	}
	if jan.Before(dec) {
		t.Error("expected 2025-01 not before 2024-12")
	}
	if dec.Before(dec) {
		t.Error("a month is not before itself")
	}
}

func TestMonth_Days(t *testing.T) {
	if got := (Month{Year: 2024, Month: time.February}).Days(); got != 29 {
		t.Errorf("expected 29 days in Feb 2024, got %d", got)
	}
	if got := (Month{Year: 2023, Month: time.February}).Days(); got != 28 {
		t.Errorf("expected 28 days in Feb 2023, got %d", got)
	}
	if got := (Month{Year: 2024, Month: time.April}).Days(); got != 30 {
		t.Errorf("expected 30 days in April, got %d", got)
	}
}

func TestMonth_ContainsUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 2024-05-31 20:00 UTC is already June in UTC+7.
	ts := time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC)

	if !(Month{Year: 2024, Month: time.June}).Contains(ts, jakarta) {
		t.Error("expected timestamp to fall in June for UTC+7")
	}
	if !(Month{Year: 2024, Month: time.May}).Contains(ts, time.UTC) {
		t.Error("expected timestamp to fall in May for UTC")
	}
}

func TestDaysRemaining(t *testing.T) {
	if got := DaysRemaining(time.Date(2024, time.June, 27, 0, 1, 0, 0, time.UTC)); got != 3 {
		t.Errorf("expected 3 days remaining, got %d", got)
	}
	if got := DaysRemaining(time.Date(2024, time.February, 26, 0, 1, 0, 0, time.UTC)); got != 3 {
		t.Errorf("expected 3 days remaining in leap February, got %d", got)
	}
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC)
	if got := DayKey(ts); got != "2024-06-01" {
		t.Errorf("expected 2024-06-01, got %s", got)
	}
}
