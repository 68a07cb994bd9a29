package fba

import "time"

// dayOffsets maps a weekday to the number of days to reach back for the
// urgency cutoff. Weekends are skipped: a Monday reaches back to Friday,
// a Sunday to Friday, every other day to the previous day.
var dayOffsets = map[time.Weekday]int{
	time.Monday:    3,
	time.Tuesday:   1,
	time.Wednesday: 1,
	time.Thursday:  1,
	time.Friday:    1,
	time.Saturday:  1,
	time.Sunday:    2,
}

// UrgentSince returns the threshold past which undispatched orders are
// urgent: midnight at the start of the most recent prior business day.
// The threshold is computed once per request from the supplied clock.
func UrgentSince(now time.Time) time.Time {
	cutoffDay := now.AddDate(0, 0, -dayOffsets[now.Weekday()])
	year, month, day := cutoffDay.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
