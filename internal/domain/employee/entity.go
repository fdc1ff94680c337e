package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeRegular      EmploymentType = "regular"
	EmploymentTypeProbationary EmploymentType = "probationary"
)

// ParseEmploymentType normalizes the status column ("Regular", " probationary ").
// Unrecognized values are kept lowercased; pay policy lookup decides how to treat them.
func ParseEmploymentType(s string) EmploymentType {
	return EmploymentType(strings.ToLower(strings.TrimSpace(s)))
}

// Compensation is the pay-rate record of one employee.
type Compensation struct {
	EmployeeID        string
	LastName          string
	FirstName         string
	Position          string
	EmploymentType    EmploymentType
	BasicSalary       decimal.Decimal
	HourlyRate        decimal.Decimal
	RiceSubsidy       decimal.Decimal
	PhoneAllowance    decimal.Decimal
	ClothingAllowance decimal.Decimal
}

func (c Compensation) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// TotalBenefits is rice + phone + clothing.
func (c Compensation) TotalBenefits() decimal.Decimal {
	return c.RiceSubsidy.Add(c.PhoneAllowance).Add(c.ClothingAllowance)
}
