package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetCompensation implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetCompensation(ctx context.Context, employeeID string) (employee.Compensation, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, last_name, first_name, position, employment_type,
			basic_salary, hourly_rate, rice_subsidy, phone_allowance, clothing_allowance
		FROM payroll_employees
		WHERE id = $1
	`

	var (
		c              employee.Compensation
		employmentType string
	)
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&c.EmployeeID, &c.LastName, &c.FirstName, &c.Position, &employmentType,
		&c.BasicSalary, &c.HourlyRate, &c.RiceSubsidy, &c.PhoneAllowance, &c.ClothingAllowance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Compensation{}, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, employeeID)
		}
		return employee.Compensation{}, fmt.Errorf("failed to get compensation for employee %s: %w", employeeID, err)
	}
	c.EmploymentType = employee.ParseEmploymentType(employmentType)

	return c, nil
}

// ListIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT id FROM payroll_employees ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return ids, nil
}
