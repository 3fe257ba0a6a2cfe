package domain

import "time"

// WeekBounds returns the first and last calendar day of the week containing date.
// weekStart selects the first weekday (time.Sunday by default).
func WeekBounds(date time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	from := day.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 6)
}

// SameDay returns true if both instants fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly strips the clock part keeping the location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
