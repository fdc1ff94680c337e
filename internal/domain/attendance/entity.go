package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by attendance exports (MM/dd/yyyy).
const DateLayout = "01/02/2006"

// TimePunch holds the raw login/logout strings of one working day as they were captured.
type TimePunch struct {
	Login  string
	Logout string
}

// Record is one attendance row owned by the store.
type Record struct {
	EmployeeID string
	Date       time.Time
	Punch      TimePunch
}

// DayTotals is the contribution of a single punch, in whole minutes.
type DayTotals struct {
	WorkedMinutes   int
	LateMinutes     int
	OvertimeMinutes int
}

// PeriodTotals - aggregate of all punches in a pay period
type PeriodTotals struct {
	WorkedMinutes   int
	LateMinutes     int
	OvertimeMinutes int
	DaysCounted     int
	DaysSkipped     int
}

// Add folds a day into the totals.
func (t *PeriodTotals) Add(day DayTotals) {
	t.WorkedMinutes += day.WorkedMinutes
	t.LateMinutes += day.LateMinutes
	t.OvertimeMinutes += day.OvertimeMinutes
	t.DaysCounted++
}

// HoursWorked returns worked minutes as fractional hours.
func (t PeriodTotals) HoursWorked() decimal.Decimal {
	return decimal.NewFromInt(int64(t.WorkedMinutes)).Div(decimal.NewFromInt(60))
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Period returns the inclusive date range covering the month.
func (m Month) Period() Period {
	return MonthPeriod(m.Year, m.Month)
}

// Period is an inclusive date range; only the calendar date of Start and End is significant.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the period spanning a whole calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// NewPeriod validates and normalizes an explicit date range.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: truncateDate(start), End: truncateDate(end)}
	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, p.End.Format(time.DateOnly), p.Start.Format(time.DateOnly))
	}
	return p, nil
}

// Contains reports whether the calendar date of d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	day := truncateDate(d)
	return !day.Before(truncateDate(p.Start)) && !day.After(truncateDate(p.End))
}

func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Label is "2024-06" for whole months and "2024-06-01..2024-06-15" otherwise.
func (p Period) Label() string {
	if p.IsZero() {
		return ""
	}
	start, end := truncateDate(p.Start), truncateDate(p.End)
	if start.Day() == 1 && end.Equal(start.AddDate(0, 1, -1)) {
		return Month{Year: start.Year(), Month: start.Month()}.String()
	}
	return start.Format(time.DateOnly) + ".." + end.Format(time.DateOnly)
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
