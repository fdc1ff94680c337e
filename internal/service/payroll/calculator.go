package payroll

import (
	"errors"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-engine/internal/service/deduction"
	"github.com/shopspring/decimal"
)

// PeriodsPerMonth splits monthly deductions into the per-period share and the
// net pay into its weekly figure.
const PeriodsPerMonth = 4

var (
	minutesPerHour  = decimal.NewFromInt(60)
	periodsPerMonth = decimal.NewFromInt(PeriodsPerMonth)
)

// Calculator assembles payslips. It holds no mutable state.
type Calculator struct {
	deductions *deduction.Engine
}

// NewCalculator uses the default statutory schedule when engine is nil.
func NewCalculator(engine *deduction.Engine) *Calculator {
	if engine == nil {
		engine = deduction.Default()
	}
	return &Calculator{deductions: engine}
}

// Compute turns compensation and aggregated attendance into a payslip.
func (c *Calculator) Compute(comp employee.Compensation, totals attendance.PeriodTotals, period attendance.Period) (payroll.Payslip, error) {
	if err := validateInput(comp, totals); err != nil {
		return payroll.Payslip{}, err
	}

	policy := PolicyFor(comp.EmploymentType)

	benefits := payroll.Benefits{Excluded: !policy.BenefitsEligible}
	if policy.BenefitsEligible {
		benefits = payroll.Benefits{
			RiceSubsidy:       comp.RiceSubsidy,
			PhoneAllowance:    comp.PhoneAllowance,
			ClothingAllowance: comp.ClothingAllowance,
			Total:             comp.TotalBenefits(),
		}
	}

	gross := perMinute(comp.HourlyRate, totals.WorkedMinutes).Add(benefits.Total)

	lateDeduction := decimal.Zero
	if policy.LatePenaltyEnabled {
		lateDeduction = perMinute(comp.HourlyRate, totals.LateMinutes)
	}
	adjusted := gross.Sub(lateDeduction)

	deductions := c.deductions.Compute(comp.BasicSalary)
	share := PeriodShare(deductions.Total)
	net := adjusted.Sub(share)

	return payroll.Payslip{
		EmployeeID:           comp.EmployeeID,
		EmployeeName:         comp.FullName(),
		EmploymentType:       comp.EmploymentType,
		Period:               period,
		Totals:               totals,
		HourlyRate:           comp.HourlyRate,
		HoursWorked:          totals.HoursWorked(),
		Benefits:             benefits,
		GrossPay:             gross,
		LateDeduction:        lateDeduction,
		AdjustedGross:        adjusted,
		BasicSalary:          comp.BasicSalary,
		Deductions:           deductions,
		PeriodDeductionShare: share,
		NetPay:               net,
		NetWeekly:            net.Div(periodsPerMonth),
	}, nil
}

// perMinute is rate/60 * minutes, multiplied first so exact inputs stay exact.
func perMinute(hourlyRate decimal.Decimal, minutes int) decimal.Decimal {
	return hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour)
}

func validateInput(comp employee.Compensation, totals attendance.PeriodTotals) error {
	var errs validator.ValidationErrors

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"hourly_rate", comp.HourlyRate},
		{"basic_salary", comp.BasicSalary},
		{"rice_subsidy", comp.RiceSubsidy},
		{"phone_allowance", comp.PhoneAllowance},
		{"clothing_allowance", comp.ClothingAllowance},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must be non-negative"})
		}
	}
	if totals.WorkedMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "worked_minutes", Message: "must be non-negative"})
	}
	if totals.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errors.Join(payroll.ErrInvalidInput, errs)
	}
	return nil
}

// Deductions exposes the statutory breakdown on its own.
func (c *Calculator) Deductions(basicSalary decimal.Decimal) payroll.DeductionBreakdown {
	return c.deductions.Compute(basicSalary)
}

// PeriodShare is the slice of monthly deductions charged to one pay period.
func PeriodShare(total decimal.Decimal) decimal.Decimal {
	return total.Div(periodsPerMonth)
}
