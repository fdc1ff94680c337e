package filestore

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// employee.txt columns
const (
	colEmpID                = 0
	colEmpLastName          = 1
	colEmpFirstName         = 2
	colEmpStatus            = 10
	colEmpPosition          = 11
	colEmpBasicSalary       = 13
	colEmpRiceSubsidy       = 14
	colEmpPhoneAllowance    = 15
	colEmpClothingAllowance = 16
	colEmpHourlyRate        = 18
)

type employeeRepository struct {
	path string
}

func NewEmployeeRepository(path string) employee.EmployeeRepository {
	return &employeeRepository{path: path}
}

// rows returns employee rows without the header line.
func (r *employeeRepository) rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := readRows(r.path, ';')
	if err != nil {
		return nil, err
	}

	rows := all[:0]
	for _, row := range all {
		if validator.IsValidEmployeeID(row[colEmpID]) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// GetCompensation implements employee.EmployeeRepository.
func (r *employeeRepository) GetCompensation(ctx context.Context, employeeID string) (employee.Compensation, error) {
	rows, err := r.rows(ctx)
	if err != nil {
		return employee.Compensation{}, err
	}
	for _, row := range rows {
		if row[colEmpID] == employeeID {
			return parseCompensation(row)
		}
	}
	return employee.Compensation{}, employee.ErrEmployeeNotFound
}

// ListIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.rows(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id := row[colEmpID]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseCompensation(row []string) (employee.Compensation, error) {
	c := employee.Compensation{
		EmployeeID:     row[colEmpID],
		LastName:       field(row, colEmpLastName),
		FirstName:      field(row, colEmpFirstName),
		Position:       field(row, colEmpPosition),
		EmploymentType: employee.ParseEmploymentType(field(row, colEmpStatus)),
	}

	amounts := []struct {
		col  int
		name string
		dst  *decimal.Decimal
	}{
		{colEmpBasicSalary, "basic salary", &c.BasicSalary},
		{colEmpHourlyRate, "hourly rate", &c.HourlyRate},
		{colEmpRiceSubsidy, "rice subsidy", &c.RiceSubsidy},
		{colEmpPhoneAllowance, "phone allowance", &c.PhoneAllowance},
		{colEmpClothingAllowance, "clothing allowance", &c.ClothingAllowance},
	}
	for _, a := range amounts {
		raw := field(row, a.col)
		if raw == "" {
			*a.dst = decimal.Zero
			continue
		}
		v, err := money.Parse(raw)
		if err != nil {
			return employee.Compensation{}, fmt.Errorf("%w: employee %s %s: %v", employee.ErrMalformedCompensation, c.EmployeeID, a.name, err)
		}
		*a.dst = v
	}
	return c, nil
}
