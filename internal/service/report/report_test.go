package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func samplePayslip() payroll.Payslip {
	return payroll.Payslip{
		EmployeeID:     "10001",
		EmployeeName:   "Manuel Garcia",
		EmploymentType: employee.EmploymentTypeRegular,
		Period:         attendance.MonthPeriod(2024, time.June),
		Totals:         attendance.PeriodTotals{WorkedMinutes: 2400, LateMinutes: 0, OvertimeMinutes: 25},
		HourlyRate:     dec("100"),
		HoursWorked:    dec("40"),
		Benefits: payroll.Benefits{
			RiceSubsidy:       dec("1500"),
			PhoneAllowance:    dec("1000"),
			ClothingAllowance: dec("500"),
			Total:             dec("3000"),
		},
		GrossPay:      dec("7000"),
		LateDeduction: decimal.Zero,
		AdjustedGross: dec("7000"),
		BasicSalary:   dec("25000"),
		Deductions: payroll.DeductionBreakdown{
			SocialInsurance: dec("1125"),
			HealthInsurance: dec("375"),
			HousingFund:     dec("100"),
			TaxableIncome:   dec("23400"),
			WithholdingTax:  dec("513.4"),
			Total:           dec("2113.4"),
		},
		PeriodDeductionShare: dec("528.35"),
		NetPay:               dec("6471.65"),
		NetWeekly:            dec("1617.9125"),
	}
}

func lineValues(r payroll.Report) map[string]string {
	out := map[string]string{}
	for _, s := range r.Sections {
		for _, l := range s.Lines {
			out[s.Title+"/"+l.Label] = l.Value
		}
	}
	return out
}

func TestFormat(t *testing.T) {
	r := Format(samplePayslip())

	assert.Equal(t, Title, r.Title)
	titles := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"EMPLOYEE", "BENEFITS", "WORK DETAILS", "SALARY", "DEDUCTIONS (Monthly Basis)", "NET PAY"}, titles)

	values := lineValues(r)
	cases := map[string]string{
		"EMPLOYEE/Period":                                   "2024-06",
		"BENEFITS/Rice Subsidy":                             "₱1,500.00",
		"BENEFITS/Total Benefits":                           "₱3,000.00",
		"WORK DETAILS/Hourly Rate":                          "₱100.00",
		"WORK DETAILS/Total Hours Worked":                   "40.00",
		"WORK DETAILS/Total Late Minutes":                   "0",
		"WORK DETAILS/Total Overtime Minutes":               "25",
		"SALARY/Gross Salary (with benefits)":               "₱7,000.00",
		"SALARY/Adjusted Gross Salary":                      "₱7,000.00",
		"DEDUCTIONS (Monthly Basis)/SSS":                    "₱1,125.00",
		"DEDUCTIONS (Monthly Basis)/PhilHealth":             "₱375.00",
		"DEDUCTIONS (Monthly Basis)/Pag-IBIG":               "₱100.00",
		"DEDUCTIONS (Monthly Basis)/Withholding Tax":        "₱513.40",
		"DEDUCTIONS (Monthly Basis)/Weekly Deduction Total": "₱528.35",
		"NET PAY/Net Salary":                                "₱6,471.65",
		"NET PAY/Net Weekly Salary":                         "₱1,617.91",
	}
	for key, want := range cases {
		assert.Equal(t, want, values[key], key)
	}
}

func TestFormat_BenefitsExcludedByPolicy(t *testing.T) {
	p := samplePayslip()
	p.EmploymentType = employee.EmploymentTypeProbationary
	p.Benefits = payroll.Benefits{Excluded: true}

	values := lineValues(Format(p))
	assert.Equal(t, "₱0.00", values["BENEFITS/Total Benefits"])
	assert.Equal(t, "not eligible (probationary)", values["BENEFITS/Eligibility"])

	_, ok := lineValues(Format(samplePayslip()))["BENEFITS/Eligibility"]
	assert.False(t, ok)
}

func TestFormat_OmitsEmptyEmployeeFields(t *testing.T) {
	p := samplePayslip()
	p.EmployeeName = ""
	p.EmploymentType = ""
	p.Period = attendance.Period{}

	r := Format(p)
	require.Len(t, r.Sections[0].Lines, 1)
	assert.Equal(t, "Employee ID", r.Sections[0].Lines[0].Label)
}

func TestRenderText(t *testing.T) {
	text := RenderText(Format(samplePayslip()))

	assert.True(t, strings.HasPrefix(text, "===== WEEKLY SALARY REPORT =====\n"))
	assert.Contains(t, text, "\nDEDUCTIONS (Monthly Basis)\n")
	assert.Contains(t, text, "Net Weekly Salary")
	assert.Contains(t, text, ": ₱1,617.91\n")
}

func TestWriteXLSX(t *testing.T) {
	second := samplePayslip()
	second.EmployeeID = "10002"
	second.EmployeeName = "Antonio Lim"
	second.NetPay = dec("1000")

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []payroll.Payslip{samplePayslip(), second}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RegisterSheet}, f.GetSheetList())

	rows, err := f.GetRows(RegisterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, registerHeaders, rows[0])
	assert.Equal(t, "10001", rows[1][0])
	assert.Equal(t, "Manuel Garcia", rows[1][1])
	assert.Equal(t, "2024-06", rows[1][3])
	assert.Equal(t, "Antonio Lim", rows[2][1])
	assert.Equal(t, "TOTAL", rows[3][0])

	gross, err := f.GetCellValue(RegisterSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "7000", gross)

	net, err := f.GetCellValue(RegisterSheet, "P4")
	require.NoError(t, err)
	assert.Equal(t, "7471.65", net)
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RegisterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TOTAL", rows[1][0])
}

func TestRegisterFilename(t *testing.T) {
	assert.Equal(t, "payroll_register_2024-06.xlsx", RegisterFilename("2024-06"))
	assert.Equal(t, "payroll_register.xlsx", RegisterFilename(""))
}
