package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-engine/internal/service/report"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	calculator        *Calculator
}

func NewPayrollService(
	employeeRepository employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	calculator *Calculator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		EmployeeRepository: employeeRepository,
		attendanceService:  attendanceService,
		calculator:         calculator,
	}
}

// GetDeductions implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetDeductions(ctx context.Context, req payroll.GetDeductionsRequest) (payroll.DeductionBreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DeductionBreakdownResponse{}, err
	}

	basic := req.Amount()
	d := s.calculator.Deductions(basic)

	return payroll.DeductionBreakdownResponse{
		BasicSalary:     basic,
		SocialInsurance: d.SocialInsurance,
		HealthInsurance: d.HealthInsurance,
		HousingFund:     d.HousingFund,
		TaxableIncome:   d.TaxableIncome,
		WithholdingTax:  d.WithholdingTax,
		Total:           d.Total,
		PeriodShare:     PeriodShare(d.Total),
	}, nil
}

// ComputePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputePayslip(ctx context.Context, req payroll.ComputePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	p, err := s.calculator.Compute(req.Compensation.Compensation(), req.PeriodTotals(), req.Period())
	metrics.ObservePayslip(metrics.SourceCompute, err)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return withReport(p), nil
}

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, req payroll.GetPayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	p, err := s.buildPayslip(ctx, req.EmployeeID, req.Period())
	metrics.ObservePayslip(metrics.SourceEmployee, err)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slog.Info("Payslip generated",
		"employee_id", p.EmployeeID,
		"period", p.Period.Label(),
		"days_counted", p.Totals.DaysCounted,
		"days_skipped", p.Totals.DaysSkipped,
	)

	return withReport(p), nil
}

// GenerateRegister implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateRegister(ctx context.Context, req payroll.PeriodQuery) (payroll.Register, error) {
	if err := req.Validate(); err != nil {
		return payroll.Register{}, err
	}

	start := time.Now()
	defer func() {
		metrics.RegisterDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := s.EmployeeRepository.ListIDs(ctx)
	if err != nil {
		return payroll.Register{}, fmt.Errorf("failed to list employees: %w", err)
	}

	register := payroll.Register{
		RunID:       uuid.New().String(),
		Period:      req.Period(),
		GeneratedAt: start.UTC(),
		Payslips:    make([]payroll.Payslip, 0, len(ids)),
	}

	// Employees are processed one after another; a failure skips only that employee.
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return payroll.Register{}, err
		}

		p, err := s.buildPayslip(ctx, id, register.Period)
		metrics.ObservePayslip(metrics.SourceRegister, err)
		if err != nil {
			slog.Warn("Skipping employee in payroll register",
				"run_id", register.RunID,
				"employee_id", id,
				"error", err,
			)
			register.Skipped = append(register.Skipped, payroll.SkippedEmployee{EmployeeID: id, Reason: err.Error()})
			continue
		}
		register.Payslips = append(register.Payslips, p)
	}

	if len(register.Payslips) == 0 {
		return payroll.Register{}, fmt.Errorf("%w: %s", payroll.ErrEmptyRegister, register.Period.Label())
	}

	slog.Info("Payroll register generated",
		"run_id", register.RunID,
		"period", register.Period.Label(),
		"payslips", len(register.Payslips),
		"skipped", len(register.Skipped),
	)

	return register, nil
}

// ExportRegister implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportRegister(ctx context.Context, req payroll.PeriodQuery) (payroll.RegisterExport, error) {
	register, err := s.GenerateRegister(ctx, req)
	if err != nil {
		return payroll.RegisterExport{}, err
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, register.Payslips); err != nil {
		return payroll.RegisterExport{}, fmt.Errorf("failed to render register: %w", err)
	}

	return payroll.RegisterExport{
		RunID:       register.RunID,
		Filename:    report.RegisterFilename(register.Period.Label()),
		ContentType: report.RegisterContentType,
		Data:        buf.Bytes(),
		Generated:   len(register.Payslips),
		Skipped:     register.Skipped,
	}, nil
}

func (s *PayrollServiceImpl) buildPayslip(ctx context.Context, employeeID string, period attendance.Period) (payroll.Payslip, error) {
	comp, err := s.EmployeeRepository.GetCompensation(ctx, employeeID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get compensation: %w", err)
	}

	totals, err := s.attendanceService.GetPeriodTotals(ctx, employeeID, period)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get attendance totals: %w", err)
	}

	return s.calculator.Compute(comp, totals, period)
}

func withReport(p payroll.Payslip) payroll.PayslipResponse {
	r := report.Format(p)
	resp := payroll.NewPayslipResponse(p)
	reportResp := payroll.NewReportResponse(r, report.RenderText(r))
	resp.Report = &reportResp
	return resp
}
