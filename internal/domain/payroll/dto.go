package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD ==========

type PeriodQuery struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (q PeriodQuery) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if q.Year < 1 || q.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1 and 9999"})
	}
	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	return errs
}

func (q PeriodQuery) Validate() error {
	if errs := q.validate(nil); len(errs) > 0 {
		return errs
	}
	return nil
}

func (q PeriodQuery) Period() attendance.Period {
	return attendance.MonthPeriod(q.Year, time.Month(q.Month))
}

// ========== DEDUCTION DTOs ==========

type GetDeductionsRequest struct {
	BasicSalary string `json:"basic_salary"`
}

func (r *GetDeductionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BasicSalary) {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "is required"})
	} else if amount, err := money.Parse(r.BasicSalary); err != nil {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be a decimal amount"})
	} else if amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Amount returns the parsed salary; call after Validate.
func (r *GetDeductionsRequest) Amount() decimal.Decimal {
	amount, _ := money.Parse(r.BasicSalary)
	return amount
}

type DeductionBreakdownResponse struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	SocialInsurance decimal.Decimal `json:"social_insurance"`
	HealthInsurance decimal.Decimal `json:"health_insurance"`
	HousingFund     decimal.Decimal `json:"housing_fund"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	WithholdingTax  decimal.Decimal `json:"withholding_tax"`
	Total           decimal.Decimal `json:"total"`
	PeriodShare     decimal.Decimal `json:"period_share"`
}

// ========== PAYSLIP DTOs ==========

type CompensationRequest struct {
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	EmploymentType    string          `json:"employment_type,omitempty"` // "regular" or "probationary"
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	RiceSubsidy       decimal.Decimal `json:"rice_subsidy"`
	PhoneAllowance    decimal.Decimal `json:"phone_allowance"`
	ClothingAllowance decimal.Decimal `json:"clothing_allowance"`
}

func (c CompensationRequest) Compensation() employee.Compensation {
	return employee.Compensation{
		EmployeeID:        c.EmployeeID,
		FirstName:         c.EmployeeName,
		EmploymentType:    employee.ParseEmploymentType(c.EmploymentType),
		BasicSalary:       c.BasicSalary,
		HourlyRate:        c.HourlyRate,
		RiceSubsidy:       c.RiceSubsidy,
		PhoneAllowance:    c.PhoneAllowance,
		ClothingAllowance: c.ClothingAllowance,
	}
}

type TotalsRequest struct {
	WorkedMinutes   int `json:"worked_minutes"`
	LateMinutes     int `json:"late_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`
}

type ComputePayslipRequest struct {
	Compensation CompensationRequest `json:"compensation"`
	Totals       TotalsRequest       `json:"totals"`
	Year         int                 `json:"year,omitempty"`
	Month        int                 `json:"month,omitempty"`
}

// Validate checks the period only; amounts and minutes are checked by the calculator.
func (r *ComputePayslipRequest) Validate() error {
	if r.Year == 0 && r.Month == 0 {
		return nil
	}
	return PeriodQuery{Year: r.Year, Month: r.Month}.Validate()
}

func (r *ComputePayslipRequest) Period() attendance.Period {
	if r.Year == 0 && r.Month == 0 {
		return attendance.Period{}
	}
	return PeriodQuery{Year: r.Year, Month: r.Month}.Period()
}

func (r *ComputePayslipRequest) PeriodTotals() attendance.PeriodTotals {
	return attendance.PeriodTotals{
		WorkedMinutes:   r.Totals.WorkedMinutes,
		LateMinutes:     r.Totals.LateMinutes,
		OvertimeMinutes: r.Totals.OvertimeMinutes,
	}
}

type GetPayslipRequest struct {
	EmployeeID string
	PeriodQuery
}

func (r *GetPayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = r.PeriodQuery.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BenefitsResponse struct {
	RiceSubsidy       decimal.Decimal `json:"rice_subsidy"`
	PhoneAllowance    decimal.Decimal `json:"phone_allowance"`
	ClothingAllowance decimal.Decimal `json:"clothing_allowance"`
	Total             decimal.Decimal `json:"total"`
	Excluded          bool            `json:"excluded_by_policy"`
}

type ReportLineResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ReportSectionResponse struct {
	Title string               `json:"title"`
	Lines []ReportLineResponse `json:"lines"`
}

type ReportResponse struct {
	Title    string                  `json:"title"`
	Sections []ReportSectionResponse `json:"sections"`
	Text     string                  `json:"text"`
}

func NewReportResponse(r Report, text string) ReportResponse {
	sections := make([]ReportSectionResponse, 0, len(r.Sections))
	for _, s := range r.Sections {
		lines := make([]ReportLineResponse, 0, len(s.Lines))
		for _, l := range s.Lines {
			lines = append(lines, ReportLineResponse{Label: l.Label, Value: l.Value})
		}
		sections = append(sections, ReportSectionResponse{Title: s.Title, Lines: lines})
	}
	return ReportResponse{Title: r.Title, Sections: sections, Text: text}
}

type PayslipResponse struct {
	EmployeeID           string                     `json:"employee_id"`
	EmployeeName         string                     `json:"employee_name,omitempty"`
	EmploymentType       string                     `json:"employment_type"`
	Period               string                     `json:"period,omitempty"`
	HourlyRate           decimal.Decimal            `json:"hourly_rate"`
	HoursWorked          decimal.Decimal            `json:"hours_worked"`
	WorkedMinutes        int                        `json:"worked_minutes"`
	LateMinutes          int                        `json:"late_minutes"`
	OvertimeMinutes      int                        `json:"overtime_minutes"`
	DaysCounted          int                        `json:"days_counted"`
	DaysSkipped          int                        `json:"days_skipped"`
	Benefits             BenefitsResponse           `json:"benefits"`
	GrossPay             decimal.Decimal            `json:"gross_pay"`
	LateDeduction        decimal.Decimal            `json:"late_deduction"`
	AdjustedGross        decimal.Decimal            `json:"adjusted_gross"`
	Deductions           DeductionBreakdownResponse `json:"deductions"`
	PeriodDeductionShare decimal.Decimal            `json:"period_deduction_share"`
	NetPay               decimal.Decimal            `json:"net_pay"`
	NetWeekly            decimal.Decimal            `json:"net_weekly"`
	Report               *ReportResponse            `json:"report,omitempty"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		EmploymentType:  string(p.EmploymentType),
		Period:          p.Period.Label(),
		HourlyRate:      p.HourlyRate,
		HoursWorked:     p.HoursWorked,
		WorkedMinutes:   p.Totals.WorkedMinutes,
		LateMinutes:     p.Totals.LateMinutes,
		OvertimeMinutes: p.Totals.OvertimeMinutes,
		DaysCounted:     p.Totals.DaysCounted,
		DaysSkipped:     p.Totals.DaysSkipped,
		Benefits: BenefitsResponse{
			RiceSubsidy:       p.Benefits.RiceSubsidy,
			PhoneAllowance:    p.Benefits.PhoneAllowance,
			ClothingAllowance: p.Benefits.ClothingAllowance,
			Total:             p.Benefits.Total,
			Excluded:          p.Benefits.Excluded,
		},
		GrossPay:      p.GrossPay,
		LateDeduction: p.LateDeduction,
		AdjustedGross: p.AdjustedGross,
		Deductions: DeductionBreakdownResponse{
			BasicSalary:     p.BasicSalary,
			SocialInsurance: p.Deductions.SocialInsurance,
			HealthInsurance: p.Deductions.HealthInsurance,
			HousingFund:     p.Deductions.HousingFund,
			TaxableIncome:   p.Deductions.TaxableIncome,
			WithholdingTax:  p.Deductions.WithholdingTax,
			Total:           p.Deductions.Total,
			PeriodShare:     p.PeriodDeductionShare,
		},
		PeriodDeductionShare: p.PeriodDeductionShare,
		NetPay:               p.NetPay,
		NetWeekly:            p.NetWeekly,
	}
}

// ========== REGISTER DTOs ==========

// RegisterExport is a rendered payroll register ready to be served as a file.
type RegisterExport struct {
	RunID       string
	Filename    string
	ContentType string
	Data        []byte
	Generated   int
	Skipped     []SkippedEmployee
}

type SkippedEmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type RegisterResponse struct {
	RunID       string                    `json:"run_id"`
	Period      string                    `json:"period"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Payslips    []PayslipResponse         `json:"payslips"`
	Skipped     []SkippedEmployeeResponse `json:"skipped"`
}

func NewRegisterResponse(r Register) RegisterResponse {
	payslips := make([]PayslipResponse, 0, len(r.Payslips))
	for _, p := range r.Payslips {
		payslips = append(payslips, NewPayslipResponse(p))
	}
	skipped := make([]SkippedEmployeeResponse, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		skipped = append(skipped, SkippedEmployeeResponse{EmployeeID: s.EmployeeID, Reason: s.Reason})
	}
	return RegisterResponse{
		RunID:       r.RunID,
		Period:      r.Period.Label(),
		GeneratedAt: r.GeneratedAt,
		Payslips:    payslips,
		Skipped:     skipped,
	}
}
