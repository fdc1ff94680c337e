package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/timeofday"
)

const DefaultBreakMinutes = 60

var (
	DefaultGraceEnd = timeofday.MustNew(8, 15, 0)
	DefaultShiftEnd = timeofday.MustNew(17, 0, 0)
)

// Aggregator turns daily punches into worked, late and overtime minutes.
// Its zero value is not usable; build one with NewAggregator.
type Aggregator struct {
	graceEnd     timeofday.TimeOfDay
	shiftEnd     timeofday.TimeOfDay
	breakMinutes int
}

type Option func(*Aggregator)

// WithGraceEnd sets the latest login that is not counted as late.
func WithGraceEnd(t timeofday.TimeOfDay) Option {
	return func(a *Aggregator) { a.graceEnd = t }
}

// WithShiftEnd sets the time after which logout counts as overtime.
func WithShiftEnd(t timeofday.TimeOfDay) Option {
	return func(a *Aggregator) { a.shiftEnd = t }
}

// WithBreakMinutes sets the unpaid break subtracted from every counted day.
func WithBreakMinutes(m int) Option {
	return func(a *Aggregator) { a.breakMinutes = m }
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		graceEnd:     DefaultGraceEnd,
		shiftEnd:     DefaultShiftEnd,
		breakMinutes: DefaultBreakMinutes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Day computes the contribution of one punch.
// Worked minutes are not clamped: a day shorter than the break goes negative.
// Late minutes are offset by overtime on the same day.
func (a *Aggregator) Day(p attendance.TimePunch) (attendance.DayTotals, error) {
	login, err := timeofday.Parse(p.Login)
	if err != nil {
		return attendance.DayTotals{}, fmt.Errorf("login: %w", err)
	}
	logout, err := timeofday.Parse(p.Logout)
	if err != nil {
		return attendance.DayTotals{}, fmt.Errorf("logout: %w", err)
	}
	if logout.Before(login) {
		return attendance.DayTotals{}, fmt.Errorf("%w: %s < %s", attendance.ErrLogoutBeforeLogin, logout, login)
	}

	worked := minutesBetween(login, logout) - a.breakMinutes
	late := 0
	if login.After(a.graceEnd) {
		late = minutesBetween(a.graceEnd, login)
	}
	overtime := 0
	if logout.After(a.shiftEnd) {
		overtime = minutesBetween(a.shiftEnd, logout)
	}

	return attendance.DayTotals{
		WorkedMinutes:   worked,
		LateMinutes:     max(0, late-overtime),
		OvertimeMinutes: overtime,
	}, nil
}

// minutesBetween truncates the elapsed time to whole minutes.
func minutesBetween(from, to timeofday.TimeOfDay) int {
	return int(to.Sub(from) / time.Minute)
}

// Aggregate sums every punch, counting unusable ones as skipped.
func (a *Aggregator) Aggregate(punches []attendance.TimePunch) attendance.PeriodTotals {
	return a.AggregateFunc(punches, nil)
}

// AggregateFunc is Aggregate with a callback invoked for each skipped punch.
func (a *Aggregator) AggregateFunc(punches []attendance.TimePunch, onSkip func(i int, err error)) attendance.PeriodTotals {
	return a.Fold(punches, func(i int, _ attendance.DayTotals, err error) {
		if err != nil && onSkip != nil {
			onSkip(i, err)
		}
	})
}

// Fold sums every punch and reports each day to visit, with err set when the
// punch was skipped. visit may be nil.
func (a *Aggregator) Fold(punches []attendance.TimePunch, visit func(i int, day attendance.DayTotals, err error)) attendance.PeriodTotals {
	var totals attendance.PeriodTotals
	for i, p := range punches {
		day, err := a.Day(p)
		if err != nil {
			totals.DaysSkipped++
		} else {
			totals.Add(day)
		}
		if visit != nil {
			visit(i, day, err)
		}
	}
	return totals
}

// Aggregate runs a one-off aggregator built from opts.
func Aggregate(punches []attendance.TimePunch, opts ...Option) attendance.PeriodTotals {
	return NewAggregator(opts...).Aggregate(punches)
}
