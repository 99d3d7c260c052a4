// Package biztime holds the billing-cycle calendar. Everything is stored and
// compared in UTC.
package biztime

import "time"

// Now is replaceable in tests.
var Now = func() time.Time { return time.Now().UTC() }

func NowUTC() time.Time {
	return Now()
}

// StartOfMonthUTC returns 00:00 on the first day of t's month.
func StartOfMonthUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextCycleStartUTC returns the first instant of the cycle after t's.
func NextCycleStartUTC(t time.Time) time.Time {
	return StartOfMonthUTC(t).AddDate(0, 1, 0)
}
