package core

import "time"

// Period is one calendar month: Start is the first instant of the month and
// End is 23:59:59.999 of its last day, both UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod maps (year, month) to its calendar-month interval. Month
// length and leap years fall out of time.Date's day-zero rollover. The
// function is total for month in [1,12] and positive years; callers validate
// their input before resolving.
func ResolvePeriod(year, month int) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).
		Add(-time.Millisecond)
	return Period{Start: start, End: end}
}

// PeriodOf returns the calendar-month period containing t.
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	return ResolvePeriod(u.Year(), int(u.Month()))
}

// Contains reports whether t falls inside the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Label renders the period for user-facing messages, e.g. "January 2024".
func (p Period) Label() string {
	return p.Start.Format("January 2006")
}

// ValidateYearMonth rejects out-of-range year/month input before it reaches
// ResolvePeriod.
func ValidateYearMonth(year, month int) error {
	if year < 1 {
		return ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}
