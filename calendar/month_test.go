package calendar

import (
	"testing"
	"time"
)

func TestVisibleDates(t *testing.T) {
	// May 2024 starts on a Wednesday and ends on a Friday.
	may := time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC)
	dates := VisibleDates(may, time.Sunday)
	if len(dates)%7 != 0 {
		t.Fatalf("expected whole weeks, got %d days", len(dates))
	}
	if got := DayKey(dates[0]); got != "2024-04-28" {
		t.Errorf("first date = %s, want 2024-04-28", got)
	}
	if got := DayKey(dates[len(dates)-1]); got != "2024-06-01" {
		t.Errorf("last date = %s, want 2024-06-01", got)
	}

	dates = VisibleDates(may, time.Monday)
	if got := DayKey(dates[0]); got != "2024-04-29" {
		t.Errorf("first monday date = %s, want 2024-04-29", got)
	}
	if got := DayKey(dates[len(dates)-1]); got != "2024-06-02" {
		t.Errorf("last monday date = %s, want 2024-06-02", got)
	}
}

func TestAddMonths(t *testing.T) {
	jan31 := time.Date(2023, 1, 31, 10, 0, 0, 0, time.UTC)
	if got := AddMonths(jan31, 1); got.Month() != time.February || got.Day() != 1 {
		t.Errorf("AddMonths(jan31, 1) = %s", got)
	}
	if got := AddMonths(jan31, -1); got.Year() != 2022 || got.Month() != time.December {
		t.Errorf("AddMonths(jan31, -1) = %s", got)
	}
}

func TestWeekdays(t *testing.T) {
	got := Weekdays(time.Monday)
	if got[0] != "Mon" || got[6] != "Sun" {
		t.Errorf("unexpected labels %v", got)
	}
}
