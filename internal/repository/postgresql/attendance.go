package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListByEmployeeAndPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period attendance.Period) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, work_date, log_in, log_out
		FROM payroll_attendance
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.EmployeeID, &rec.Date, &rec.Punch.Login, &rec.Punch.Logout); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: employee %s, period %s", attendance.ErrNoAttendance, employeeID, period.Label())
	}

	return records, nil
}

// ListMonths implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListMonths(ctx context.Context, employeeID string) ([]attendance.Month, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT
			EXTRACT(YEAR FROM work_date)::int AS year,
			EXTRACT(MONTH FROM work_date)::int AS month
		FROM payroll_attendance
		WHERE employee_id = $1
		ORDER BY year ASC, month ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance months for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	months := []attendance.Month{}
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("failed to scan attendance month: %w", err)
		}
		months = append(months, attendance.Month{Year: year, Month: time.Month(month)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance months: %w", err)
	}

	return months, nil
}
