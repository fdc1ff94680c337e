package payroll

import "context"

// PayrollService defines business logic for payslip generation
type PayrollService interface {
	// GetDeductions computes the statutory deductions for a basic salary
	GetDeductions(ctx context.Context, req GetDeductionsRequest) (DeductionBreakdownResponse, error)

	// ComputePayslip runs the calculator over caller-supplied compensation and totals
	ComputePayslip(ctx context.Context, req ComputePayslipRequest) (PayslipResponse, error)

	// GeneratePayslip loads the employee's compensation and attendance and computes the payslip
	GeneratePayslip(ctx context.Context, req GetPayslipRequest) (PayslipResponse, error)

	// GenerateRegister computes payslips of every employee for a period, skipping failures
	GenerateRegister(ctx context.Context, req PeriodQuery) (Register, error)

	// ExportRegister renders GenerateRegister as an XLSX workbook
	ExportRegister(ctx context.Context, req PeriodQuery) (RegisterExport, error)
}
