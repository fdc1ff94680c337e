package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthPeriod(t *testing.T) {
	p := MonthPeriod(2024, time.February)

	assert.Equal(t, date(2024, time.February, 1), p.Start)
	assert.Equal(t, date(2024, time.February, 29), p.End)
	assert.Equal(t, "2024-02", p.Label())
	assert.Equal(t, p, Month{Year: 2024, Month: time.February}.Period())
}

func TestPeriod_Contains(t *testing.T) {
	p := MonthPeriod(2024, time.June)

	assert.True(t, p.Contains(date(2024, time.June, 1)))
	assert.True(t, p.Contains(time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(date(2024, time.July, 1)))
	assert.False(t, p.Contains(date(2023, time.June, 15)))
}

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod(time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC), date(2024, time.June, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 1), p.Start)
	assert.Equal(t, "2024-06-01..2024-06-15", p.Label())

	_, err = NewPeriod(date(2024, time.June, 15), date(2024, time.June, 1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriod_Zero(t *testing.T) {
	var p Period
	assert.True(t, p.IsZero())
	assert.Empty(t, p.Label())
}

func TestPeriodTotals_Add(t *testing.T) {
	var totals PeriodTotals
	totals.Add(DayTotals{WorkedMinutes: 470, LateMinutes: 5})
	totals.Add(DayTotals{WorkedMinutes: 435, OvertimeMinutes: 10})

	assert.Equal(t, 905, totals.WorkedMinutes)
	assert.Equal(t, 5, totals.LateMinutes)
	assert.Equal(t, 10, totals.OvertimeMinutes)
	assert.Equal(t, 2, totals.DaysCounted)
	assert.Equal(t, "15.0833", totals.HoursWorked().StringFixed(4))
}
