package attendance

import "context"

// AttendanceRepository is the read side of the attendance store.
type AttendanceRepository interface {
	// ListByEmployeeAndPeriod returns the employee's punches whose date falls in period,
	// ordered by date. Returns ErrNoAttendance when nothing matches.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period Period) ([]Record, error)

	// ListMonths returns the distinct months that have attendance for the employee, ascending.
	ListMonths(ctx context.Context, employeeID string) ([]Month, error)
}
