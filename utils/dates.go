// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// PreviousWeekWindow returns the most recently completed calendar week
// relative to now: Monday 00:00:00 through Sunday 23:59:59, always ending
// before the current week.
func PreviousWeekWindow(now time.Time) (start, end time.Time) {
	// Days since this week's Monday, then one more full week back.
	sinceMonday := (int(now.Weekday()) + 6) % 7
	monday := BeginningOfDay(now.AddDate(0, 0, -(sinceMonday + 7)))
	sunday := monday.AddDate(0, 0, 6)
	end = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, sunday.Location())
	return monday, end
}
