package employee

import "context"

type EmployeeRepository interface {
	GetCompensation(ctx context.Context, employeeID string) (Compensation, error)
	ListIDs(ctx context.Context) ([]string, error)
}
