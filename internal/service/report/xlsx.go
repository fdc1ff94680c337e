package report

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	RegisterSheet       = "Payroll Register"
	RegisterContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var registerHeaders = []string{
	"Employee ID",
	"Name",
	"Status",
	"Period",
	"Hours Worked",
	"Late Minutes",
	"Total Benefits",
	"Gross Pay",
	"Late Deduction",
	"Adjusted Gross",
	"SSS",
	"PhilHealth",
	"Pag-IBIG",
	"Withholding Tax",
	"Deduction Share",
	"Net Pay",
	"Net Weekly",
}

// RegisterFilename is the download name of a register for a period label.
func RegisterFilename(periodLabel string) string {
	if periodLabel == "" {
		return "payroll_register.xlsx"
	}
	return fmt.Sprintf("payroll_register_%s.xlsx", periodLabel)
}

// WriteXLSX writes one row per payslip followed by a totals row.
func WriteXLSX(w io.Writer, payslips []payroll.Payslip) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RegisterSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for c, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(RegisterSheet, cell, h)
	}

	var gross, share, net decimal.Decimal
	for i, p := range payslips {
		row := []any{
			p.EmployeeID,
			p.EmployeeName,
			string(p.EmploymentType),
			p.Period.Label(),
			amount(p.HoursWorked),
			p.Totals.LateMinutes,
			amount(p.Benefits.Total),
			amount(p.GrossPay),
			amount(p.LateDeduction),
			amount(p.AdjustedGross),
			amount(p.Deductions.SocialInsurance),
			amount(p.Deductions.HealthInsurance),
			amount(p.Deductions.HousingFund),
			amount(p.Deductions.WithholdingTax),
			amount(p.PeriodDeductionShare),
			amount(p.NetPay),
			amount(p.NetWeekly),
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			_ = f.SetCellValue(RegisterSheet, cell, v)
		}
		gross = gross.Add(p.GrossPay)
		share = share.Add(p.PeriodDeductionShare)
		net = net.Add(p.NetPay)
	}

	totalRow := len(payslips) + 2
	totals := map[int]any{
		1:  "TOTAL",
		8:  amount(gross),
		15: amount(share),
		16: amount(net),
	}
	for c, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(c, totalRow)
		_ = f.SetCellValue(RegisterSheet, cell, v)
	}

	_ = f.SetColWidth(RegisterSheet, "A", "A", 12)
	_ = f.SetColWidth(RegisterSheet, "B", "B", 28)
	_ = f.SetColWidth(RegisterSheet, "C", "D", 14)
	_ = f.SetColWidth(RegisterSheet, "E", "Q", 16)

	lastHeader, _ := excelize.CoordinatesToCellName(len(registerHeaders), 1)
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(RegisterSheet, "A1", lastHeader, style)

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	firstTotal, _ := excelize.CoordinatesToCellName(1, totalRow)
	lastTotal, _ := excelize.CoordinatesToCellName(len(registerHeaders), totalRow)
	_ = f.SetCellStyle(RegisterSheet, firstTotal, lastTotal, bold)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
