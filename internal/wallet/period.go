package wallet

import "time"

// MonthRange is the budgeting month that starts on startDay of the given
// month, in UTC. startDay outside 1..28 is treated as 1.
func MonthRange(year int, month time.Month, startDay int) Range {
	if startDay < 1 || startDay > 28 {
		startDay = 1
	}

	start := time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)

	return Range{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// CurrentMonth returns the MonthRange containing now.
func CurrentMonth(now time.Time, startDay int) Range {
	now = now.UTC()

	r := MonthRange(now.Year(), now.Month(), startDay)
	if now.Before(r.Start) {
		r = MonthRange(now.Year(), now.Month()-1, startDay)
	}

	return r
}
