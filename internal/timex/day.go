package timex

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a midnight instant by n calendar days. Calendar arithmetic
// keeps the result at midnight across DST changes, unlike adding 24h.
func AddDays(midnight time.Time, n int) time.Time {
	y, m, d := midnight.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, midnight.Location())
}

// WeekEnd returns the exclusive end of the week containing t. Weeks run
// Sunday through Saturday, so the result is the midnight that starts the next
// Sunday. On a Sunday this is seven days ahead.
func WeekEnd(t time.Time) time.Time {
	return AddDays(StartOfDay(t), 7-int(t.Weekday()))
}
