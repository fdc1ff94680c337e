package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

const Title = "WEEKLY SALARY REPORT"

// Format projects a payslip into labeled sections. Amounts are only
// formatted here, never recomputed.
func Format(p payroll.Payslip) payroll.Report {
	employeeLines := []payroll.ReportLine{
		{Label: "Employee ID", Value: p.EmployeeID},
	}
	if p.EmployeeName != "" {
		employeeLines = append(employeeLines, payroll.ReportLine{Label: "Name", Value: p.EmployeeName})
	}
	if p.EmploymentType != "" {
		employeeLines = append(employeeLines, payroll.ReportLine{Label: "Status", Value: string(p.EmploymentType)})
	}
	if label := p.Period.Label(); label != "" {
		employeeLines = append(employeeLines, payroll.ReportLine{Label: "Period", Value: label})
	}

	benefitLines := []payroll.ReportLine{
		{Label: "Rice Subsidy", Value: money.Format(p.Benefits.RiceSubsidy)},
		{Label: "Phone Allowance", Value: money.Format(p.Benefits.PhoneAllowance)},
		{Label: "Clothing Allowance", Value: money.Format(p.Benefits.ClothingAllowance)},
		{Label: "Total Benefits", Value: money.Format(p.Benefits.Total)},
	}
	if p.Benefits.Excluded {
		benefitLines = append(benefitLines, payroll.ReportLine{
			Label: "Eligibility",
			Value: fmt.Sprintf("not eligible (%s)", p.EmploymentType),
		})
	}

	return payroll.Report{
		Title: Title,
		Sections: []payroll.ReportSection{
			{Title: "EMPLOYEE", Lines: employeeLines},
			{Title: "BENEFITS", Lines: benefitLines},
			{Title: "WORK DETAILS", Lines: []payroll.ReportLine{
				{Label: "Hourly Rate", Value: money.Format(p.HourlyRate)},
				{Label: "Total Hours Worked", Value: p.HoursWorked.StringFixed(2)},
				{Label: "Total Late Minutes", Value: strconv.Itoa(p.Totals.LateMinutes)},
				{Label: "Total Overtime Minutes", Value: strconv.Itoa(p.Totals.OvertimeMinutes)},
			}},
			{Title: "SALARY", Lines: []payroll.ReportLine{
				{Label: "Gross Salary (with benefits)", Value: money.Format(p.GrossPay)},
				{Label: "Late Deduction", Value: money.Format(p.LateDeduction)},
				{Label: "Adjusted Gross Salary", Value: money.Format(p.AdjustedGross)},
			}},
			{Title: "DEDUCTIONS (Monthly Basis)", Lines: []payroll.ReportLine{
				{Label: "SSS", Value: money.Format(p.Deductions.SocialInsurance)},
				{Label: "PhilHealth", Value: money.Format(p.Deductions.HealthInsurance)},
				{Label: "Pag-IBIG", Value: money.Format(p.Deductions.HousingFund)},
				{Label: "Withholding Tax", Value: money.Format(p.Deductions.WithholdingTax)},
				{Label: "Total Deductions", Value: money.Format(p.Deductions.Total)},
				{Label: "Weekly Deduction Total", Value: money.Format(p.PeriodDeductionShare)},
			}},
			{Title: "NET PAY", Lines: []payroll.ReportLine{
				{Label: "Net Salary", Value: money.Format(p.NetPay)},
				{Label: "Net Weekly Salary", Value: money.Format(p.NetWeekly)},
			}},
		},
	}
}

// RenderText lays a report out as aligned plain text.
func RenderText(r payroll.Report) string {
	width := 0
	for _, s := range r.Sections {
		for _, l := range s.Lines {
			width = max(width, len(l.Label))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "===== %s =====\n", r.Title)
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "\n%s\n", s.Title)
		for _, l := range s.Lines {
			fmt.Fprintf(&b, "  %-*s : %s\n", width, l.Label, l.Value)
		}
	}
	return b.String()
}
