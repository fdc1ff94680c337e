package deduction

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Band maps a salary range [Lower, Upper] to a flat contribution.
// The last band of a table may be Unbounded, in which case Upper is ignored.
type Band struct {
	Lower     decimal.Decimal
	Upper     decimal.Decimal
	Unbounded bool
	Amount    decimal.Decimal
}

func (b Band) contains(s decimal.Decimal) bool {
	if s.LessThan(b.Lower) {
		return false
	}
	return b.Unbounded || s.LessThanOrEqual(b.Upper)
}

// HealthRule: clamp(salary*Rate, Floor, Ceiling) * EmployeeShare.
type HealthRule struct {
	Rate          decimal.Decimal
	Floor         decimal.Decimal
	Ceiling       decimal.Decimal
	EmployeeShare decimal.Decimal
}

// HousingRule: min(salary * (salary > Threshold ? HighRate : LowRate), Cap).
type HousingRule struct {
	Threshold decimal.Decimal
	LowRate   decimal.Decimal
	HighRate  decimal.Decimal
	Cap       decimal.Decimal
}

// TaxBracket applies Base + (taxable - Threshold) * Rate to incomes up to and including UpTo.
type TaxBracket struct {
	UpTo      decimal.Decimal
	Unbounded bool
	Base      decimal.Decimal
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// Schedule holds every rate and table the engine needs.
type Schedule struct {
	SocialInsurance []Band
	HealthInsurance HealthRule
	HousingFund     HousingRule
	WithholdingTax  []TaxBracket
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultSchedule returns the statutory contribution tables.
func DefaultSchedule() Schedule {
	return Schedule{
		SocialInsurance: defaultSocialInsuranceBands(),
		HealthInsurance: HealthRule{
			Rate:          d("0.03"),
			Floor:         d("300"),
			Ceiling:       d("1800"),
			EmployeeShare: d("0.5"),
		},
		HousingFund: HousingRule{
			Threshold: d("1500"),
			LowRate:   d("0.01"),
			HighRate:  d("0.02"),
			Cap:       d("100"),
		},
		WithholdingTax: []TaxBracket{
			{UpTo: d("20832"), Base: decimal.Zero, Threshold: decimal.Zero, Rate: decimal.Zero},
			{UpTo: d("33332"), Base: decimal.Zero, Threshold: d("20833"), Rate: d("0.20")},
			{UpTo: d("66667"), Base: d("2500"), Threshold: d("33333"), Rate: d("0.25")},
			{UpTo: d("166667"), Base: d("10833"), Threshold: d("66667"), Rate: d("0.30")},
			{UpTo: d("666667"), Base: d("40833.33"), Threshold: d("166667"), Rate: d("0.32")},
			{Unbounded: true, Base: d("200833.33"), Threshold: d("666667"), Rate: d("0.35")},
		},
	}
}

// defaultSocialInsuranceBands: [0, 3249.99] -> 135, then 500-wide bands from 3250
// starting at 157.50 and rising 22.50 each, capped by [24750, inf) -> 1125.
func defaultSocialInsuranceBands() []Band {
	width := d("500")
	step := d("22.50")
	lastLower := d("24250")

	bands := []Band{{Lower: decimal.Zero, Upper: d("3249.99"), Amount: d("135")}}
	amount := d("157.50")
	for lower := d("3250"); lower.LessThanOrEqual(lastLower); lower = lower.Add(width) {
		bands = append(bands, Band{Lower: lower, Upper: lower.Add(d("499.99")), Amount: amount})
		amount = amount.Add(step)
	}
	return append(bands, Band{Lower: d("24750"), Unbounded: true, Amount: d("1125")})
}

// Validate checks that band and bracket tables are sorted and non-overlapping.
func (s Schedule) Validate() error {
	if len(s.SocialInsurance) == 0 {
		return fmt.Errorf("%w: social insurance table is empty", payroll.ErrInvalidSchedule)
	}
	for i, b := range s.SocialInsurance {
		if b.Lower.IsNegative() || b.Amount.IsNegative() {
			return fmt.Errorf("%w: social insurance band %d has a negative value", payroll.ErrInvalidSchedule, i)
		}
		if b.Unbounded && i != len(s.SocialInsurance)-1 {
			return fmt.Errorf("%w: only the last social insurance band may be unbounded", payroll.ErrInvalidSchedule)
		}
		if !b.Unbounded && b.Upper.LessThan(b.Lower) {
			return fmt.Errorf("%w: social insurance band %d upper bound is below its lower bound", payroll.ErrInvalidSchedule, i)
		}
		if i > 0 && !b.Lower.GreaterThan(s.SocialInsurance[i-1].Upper) {
			return fmt.Errorf("%w: social insurance band %d overlaps or is out of order", payroll.ErrInvalidSchedule, i)
		}
	}

	h := s.HealthInsurance
	if h.Rate.IsNegative() || h.EmployeeShare.IsNegative() || h.Floor.IsNegative() || h.Ceiling.LessThan(h.Floor) {
		return fmt.Errorf("%w: health insurance needs non-negative rates and floor <= ceiling", payroll.ErrInvalidSchedule)
	}

	f := s.HousingFund
	if f.LowRate.IsNegative() || f.HighRate.IsNegative() || f.Cap.IsNegative() || f.Threshold.IsNegative() {
		return fmt.Errorf("%w: housing fund values must be non-negative", payroll.ErrInvalidSchedule)
	}

	if len(s.WithholdingTax) == 0 {
		return fmt.Errorf("%w: withholding tax table is empty", payroll.ErrInvalidSchedule)
	}
	for i, b := range s.WithholdingTax {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: tax bracket %d has a negative rate", payroll.ErrInvalidSchedule, i)
		}
		last := i == len(s.WithholdingTax)-1
		if b.Unbounded != last {
			return fmt.Errorf("%w: exactly the last tax bracket must be unbounded", payroll.ErrInvalidSchedule)
		}
		if i > 0 && !last && !b.UpTo.GreaterThan(s.WithholdingTax[i-1].UpTo) {
			return fmt.Errorf("%w: tax bracket %d is out of order", payroll.ErrInvalidSchedule, i)
		}
	}
	return nil
}

func (s Schedule) clone() Schedule {
	out := s
	out.SocialInsurance = append([]Band(nil), s.SocialInsurance...)
	out.WithholdingTax = append([]TaxBracket(nil), s.WithholdingTax...)
	return out
}
