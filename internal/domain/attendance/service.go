package attendance

import "context"

// AttendanceService exposes time parsing and punch aggregation.
type AttendanceService interface {
	// ParseTime normalizes a single raw punch string
	ParseTime(ctx context.Context, req ParseTimeRequest) (ParseTimeResponse, error)

	// Aggregate folds ad-hoc punches into period totals with a per-day breakdown
	Aggregate(ctx context.Context, req AggregateRequest) (AggregateResponse, error)

	// GetPeriodTotals aggregates the stored punches of an employee for a period.
	// A period without attendance yields zero totals, not an error.
	GetPeriodTotals(ctx context.Context, employeeID string, period Period) (PeriodTotals, error)

	// ListMonths returns the months in which the employee has attendance
	ListMonths(ctx context.Context, employeeID string) (ListMonthsResponse, error)
}
