package calendar

import "time"

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths moves n months from the month of t, always landing on the first day,
// so January 31st plus one month is February and not March.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return Day(t).AddDate(0, 0, -offset)
}

func endOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return startOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// VisibleDates returns all the days shown by a month grid: from the beginning of
// the week containing the first of the month to the end of the week containing
// its last day. The result always has a multiple of seven elements.
func VisibleDates(month time.Time, weekStart time.Weekday) []time.Time {
	first := StartOfMonth(month)
	last := first.AddDate(0, 1, -1)

	start := startOfWeek(first, weekStart)
	end := endOfWeek(last, weekStart)

	dates := make([]time.Time, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Weekdays returns the weekday labels in grid order.
func Weekdays(weekStart time.Weekday) []string {
	labels := make([]string, 7)
	for i := range labels {
		wd := time.Weekday((int(weekStart) + i) % 7)
		labels[i] = wd.String()[:3]
	}
	return labels
}
