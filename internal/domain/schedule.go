package domain

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

// Day ranges the three pool generation days are drawn from. Each schedule
// holds exactly one day per range, sorted ascending.
var ScheduleDayRanges = [3][2]int{
	{3, 10},
	{11, 20},
	{21, 28},
}

var yearMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidYearMonth reports whether s has the "YYYY-MM" shape.
func ValidYearMonth(s string) bool {
	return yearMonthRe.MatchString(s)
}

// MonthRange returns the UTC half-open interval [first day of yearMonth,
// first day of the next month) for issue-date scans.
func MonthRange(yearMonth string) (time.Time, time.Time, error) {
	if !ValidYearMonth(yearMonth) {
		return time.Time{}, time.Time{}, fmt.Errorf("month range: %q: %w", yearMonth, ErrValidation)
	}
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month range: parse %q: %w", yearMonth, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// PoolSchedule is the set of emergency pool generation days for one calendar
// month. Exactly one record exists per year-month; once created it is never
// updated.
type PoolSchedule struct {
	YearMonth string
	Days      [3]int
}

// ContainsDay reports whether day is one of the scheduled generation days.
func (s PoolSchedule) ContainsDay(day int) bool {
	return slices.Contains(s.Days[:], day)
}

// Validate checks the year-month shape and that each day falls in its range
// with the days sorted ascending.
func (s PoolSchedule) Validate() error {
	if !ValidYearMonth(s.YearMonth) {
		return NewValidationError("year_month", "must be YYYY-MM")
	}
	for i, d := range s.Days {
		lo, hi := ScheduleDayRanges[i][0], ScheduleDayRanges[i][1]
		if d < lo || d > hi {
			return NewValidationError("days", "day out of range for its slot")
		}
	}
	return nil
}
