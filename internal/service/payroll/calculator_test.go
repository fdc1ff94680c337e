package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func regularCompensation() employee.Compensation {
	return employee.Compensation{
		EmployeeID:        "10001",
		FirstName:         "Manuel",
		LastName:          "Garcia",
		EmploymentType:    employee.EmploymentTypeRegular,
		BasicSalary:       dec("25000"),
		HourlyRate:        dec("100"),
		RiceSubsidy:       dec("1500"),
		PhoneAllowance:    dec("1000"),
		ClothingAllowance: dec("500"),
	}
}

func TestCalculator_Compute(t *testing.T) {
	period := attendance.MonthPeriod(2024, time.June)
	totals := attendance.PeriodTotals{WorkedMinutes: 2400, DaysCounted: 5}

	p, err := NewCalculator(nil).Compute(regularCompensation(), totals, period)
	require.NoError(t, err)

	assert.Equal(t, "10001", p.EmployeeID)
	assert.Equal(t, "Manuel Garcia", p.EmployeeName)
	assert.Equal(t, period, p.Period)
	assertDecimal(t, "40", p.HoursWorked, "hours worked")
	assertDecimal(t, "3000", p.Benefits.Total, "benefits")
	assert.False(t, p.Benefits.Excluded)
	assertDecimal(t, "7000", p.GrossPay, "gross")
	assertDecimal(t, "0", p.LateDeduction, "late deduction")
	assertDecimal(t, "7000", p.AdjustedGross, "adjusted gross")
	assertDecimal(t, "2113.4", p.Deductions.Total, "deductions")
	assertDecimal(t, "528.35", p.PeriodDeductionShare, "period share")
	assertDecimal(t, "6471.65", p.NetPay, "net")
	assertDecimal(t, "1617.9125", p.NetWeekly, "net weekly")
}

func TestCalculator_LatePenalty(t *testing.T) {
	totals := attendance.PeriodTotals{WorkedMinutes: 2400, LateMinutes: 30}

	p, err := NewCalculator(nil).Compute(regularCompensation(), totals, attendance.Period{})
	require.NoError(t, err)

	assertDecimal(t, "50", p.LateDeduction, "late deduction")
	assertDecimal(t, "6950", p.AdjustedGross, "adjusted gross")
	assertDecimal(t, "6421.65", p.NetPay, "net")
}

func TestCalculator_MultiplyBeforeDivide(t *testing.T) {
	comp := regularCompensation()
	comp.HourlyRate = dec("535.71")
	comp.RiceSubsidy, comp.PhoneAllowance, comp.ClothingAllowance = decimal.Zero, decimal.Zero, decimal.Zero

	p, err := NewCalculator(nil).Compute(comp, attendance.PeriodTotals{WorkedMinutes: 470, LateMinutes: 7}, attendance.Period{})
	require.NoError(t, err)

	assertDecimal(t, "4196.395", p.GrossPay, "gross")
	assertDecimal(t, "62.4995", p.LateDeduction, "late deduction")
}

func TestCalculator_ProbationaryExcludesBenefits(t *testing.T) {
	comp := regularCompensation()
	comp.EmploymentType = employee.EmploymentTypeProbationary

	p, err := NewCalculator(nil).Compute(comp, attendance.PeriodTotals{WorkedMinutes: 2400, LateMinutes: 30}, attendance.Period{})
	require.NoError(t, err)

	assert.True(t, p.Benefits.Total.IsZero())
	assert.True(t, p.Benefits.Excluded)
	assertDecimal(t, "4000", p.GrossPay, "gross")
	assertDecimal(t, "50", p.LateDeduction, "late deduction")
}

func TestCalculator_UnknownTypeIsRegular(t *testing.T) {
	comp := regularCompensation()
	comp.EmploymentType = employee.ParseEmploymentType("Contractual")

	p, err := NewCalculator(nil).Compute(comp, attendance.PeriodTotals{WorkedMinutes: 2400}, attendance.Period{})
	require.NoError(t, err)
	assertDecimal(t, "7000", p.GrossPay, "gross")
}

func TestCalculator_ZeroAttendance(t *testing.T) {
	p, err := NewCalculator(nil).Compute(regularCompensation(), attendance.PeriodTotals{}, attendance.Period{})
	require.NoError(t, err)

	assertDecimal(t, "3000", p.GrossPay, "gross")
	assertDecimal(t, "2471.65", p.NetPay, "net")
}

func TestCalculator_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*employee.Compensation, *attendance.PeriodTotals)
		field  string
	}{
		{"negative hourly rate", func(c *employee.Compensation, _ *attendance.PeriodTotals) { c.HourlyRate = dec("-1") }, "hourly_rate"},
		{"negative basic salary", func(c *employee.Compensation, _ *attendance.PeriodTotals) { c.BasicSalary = dec("-0.01") }, "basic_salary"},
		{"negative benefit", func(c *employee.Compensation, _ *attendance.PeriodTotals) { c.PhoneAllowance = dec("-5") }, "phone_allowance"},
		{"negative worked minutes", func(_ *employee.Compensation, tt *attendance.PeriodTotals) { tt.WorkedMinutes = -60 }, "worked_minutes"},
		{"negative late minutes", func(_ *employee.Compensation, tt *attendance.PeriodTotals) { tt.LateMinutes = -1 }, "late_minutes"},
	}
	for _, c := range cases {
		comp := regularCompensation()
		totals := attendance.PeriodTotals{WorkedMinutes: 2400}
		c.mutate(&comp, &totals)

		_, err := NewCalculator(nil).Compute(comp, totals, attendance.Period{})
		require.ErrorIs(t, err, payroll.ErrInvalidInput, c.name)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, c.name)
		assert.Contains(t, verrs.ToMap(), c.field, c.name)
	}
}

func TestCalculator_Deterministic(t *testing.T) {
	calc := NewCalculator(nil)
	totals := attendance.PeriodTotals{WorkedMinutes: 9123, LateMinutes: 47}

	a, err := calc.Compute(regularCompensation(), totals, attendance.Period{})
	require.NoError(t, err)
	b, err := calc.Compute(regularCompensation(), totals, attendance.Period{})
	require.NoError(t, err)

	assert.True(t, a.NetPay.Equal(b.NetPay))
	assert.True(t, a.NetWeekly.Equal(b.NetWeekly))
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, PayPolicy{BenefitsEligible: true, LatePenaltyEnabled: true}, PolicyFor(employee.EmploymentTypeRegular))
	assert.Equal(t, PayPolicy{BenefitsEligible: false, LatePenaltyEnabled: true}, PolicyFor(employee.EmploymentTypeProbationary))
	assert.Equal(t, PolicyFor(employee.EmploymentTypeRegular), PolicyFor(""))
}
