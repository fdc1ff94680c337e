package deduction

import (
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Engine evaluates a Schedule. It is immutable and safe for concurrent use.
type Engine struct {
	schedule Schedule
}

// NewEngine validates the schedule and keeps a private copy of its tables.
func NewEngine(s Schedule) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Engine{schedule: s.clone()}, nil
}

var defaultEngine = mustEngine(DefaultSchedule())

func mustEngine(s Schedule) *Engine {
	e, err := NewEngine(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Default returns the engine over DefaultSchedule.
func Default() *Engine {
	return defaultEngine
}

// Schedule returns a copy of the tables in use.
func (e *Engine) Schedule() Schedule {
	return e.schedule.clone()
}

// SocialInsurance looks the salary up in the band table; salaries outside every band pay 0.
func (e *Engine) SocialInsurance(salary decimal.Decimal) decimal.Decimal {
	bands := e.schedule.SocialInsurance
	i := sort.Search(len(bands), func(i int) bool {
		return bands[i].Lower.GreaterThan(salary)
	}) - 1
	if i < 0 || !bands[i].contains(salary) {
		return decimal.Zero
	}
	return bands[i].Amount
}

func (e *Engine) HealthInsurance(salary decimal.Decimal) decimal.Decimal {
	h := e.schedule.HealthInsurance
	premium := salary.Mul(h.Rate)
	premium = decimal.Max(premium, h.Floor)
	premium = decimal.Min(premium, h.Ceiling)
	return premium.Mul(h.EmployeeShare)
}

func (e *Engine) HousingFund(salary decimal.Decimal) decimal.Decimal {
	f := e.schedule.HousingFund
	rate := f.LowRate
	if salary.GreaterThan(f.Threshold) {
		rate = f.HighRate
	}
	return decimal.Min(salary.Mul(rate), f.Cap)
}

// WithholdingTax applies the first bracket whose upper bound is >= taxable. No rounding.
func (e *Engine) WithholdingTax(taxable decimal.Decimal) decimal.Decimal {
	brackets := e.schedule.WithholdingTax
	i := sort.Search(len(brackets), func(i int) bool {
		return brackets[i].Unbounded || taxable.LessThanOrEqual(brackets[i].UpTo)
	})
	if i == len(brackets) {
		return decimal.Zero
	}
	b := brackets[i]
	if b.Rate.IsZero() {
		return b.Base
	}
	return b.Base.Add(taxable.Sub(b.Threshold).Mul(b.Rate))
}

// Compute derives every statutory deduction from the basic salary.
// Tax is levied on the salary net of the three contributions.
func (e *Engine) Compute(basicSalary decimal.Decimal) payroll.DeductionBreakdown {
	si := e.SocialInsurance(basicSalary)
	hi := e.HealthInsurance(basicSalary)
	hf := e.HousingFund(basicSalary)
	contributions := si.Add(hi).Add(hf)
	taxable := basicSalary.Sub(contributions)
	tax := e.WithholdingTax(taxable)

	return payroll.DeductionBreakdown{
		SocialInsurance: si,
		HealthInsurance: hi,
		HousingFund:     hf,
		TaxableIncome:   taxable,
		WithholdingTax:  tax,
		Total:           contributions.Add(tax),
	}
}

// Compute runs the default engine.
func Compute(basicSalary decimal.Decimal) payroll.DeductionBreakdown {
	return defaultEngine.Compute(basicSalary)
}
