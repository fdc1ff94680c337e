package leave

import "context"

// LeaveService checks leave applications against the employee's balance
type LeaveService interface {
	// GetBalance returns the remaining days per leave type, opening the balance on first use
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// RequestLeave approves the request and deducts the days, or fails with ErrInsufficientBalance
	RequestLeave(ctx context.Context, employeeID string, req RequestLeaveRequest) (RequestLeaveResponse, error)
}
