package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// DeductionBreakdown - statutory deductions computed from the basic salary
type DeductionBreakdown struct {
	SocialInsurance decimal.Decimal // SSS
	HealthInsurance decimal.Decimal // PhilHealth, employee share
	HousingFund     decimal.Decimal // Pag-IBIG
	TaxableIncome   decimal.Decimal
	WithholdingTax  decimal.Decimal
	Total           decimal.Decimal
}

// Benefits as applied to a payslip. Excluded marks amounts zeroed by the pay
// policy, as opposed to an employee whose record carries no benefits.
type Benefits struct {
	RiceSubsidy       decimal.Decimal
	PhoneAllowance    decimal.Decimal
	ClothingAllowance decimal.Decimal
	Total             decimal.Decimal
	Excluded          bool
}

// Payslip - one employee's computed pay for a period, with every intermediate figure
type Payslip struct {
	EmployeeID           string
	EmployeeName         string
	EmploymentType       employee.EmploymentType
	Period               attendance.Period
	Totals               attendance.PeriodTotals
	HourlyRate           decimal.Decimal
	HoursWorked          decimal.Decimal
	Benefits             Benefits
	GrossPay             decimal.Decimal
	LateDeduction        decimal.Decimal
	AdjustedGross        decimal.Decimal
	BasicSalary          decimal.Decimal
	Deductions           DeductionBreakdown
	PeriodDeductionShare decimal.Decimal
	NetPay               decimal.Decimal
	NetWeekly            decimal.Decimal
}

// ReportLine is a single labeled, already formatted value.
type ReportLine struct {
	Label string
	Value string
}

type ReportSection struct {
	Title string
	Lines []ReportLine
}

// Report is the printable rendition of a payslip.
type Report struct {
	Title    string
	Sections []ReportSection
}

// SkippedEmployee records why an employee is missing from a register.
type SkippedEmployee struct {
	EmployeeID string
	Reason     string
}

// Register - payslips of every employee for one period
type Register struct {
	RunID       string
	Period      attendance.Period
	GeneratedAt time.Time
	Payslips    []Payslip
	Skipped     []SkippedEmployee
}
