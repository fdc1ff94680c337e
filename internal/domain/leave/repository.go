package leave

import "context"

type BalanceRepository interface {
	// Get returns ErrBalanceNotFound when no balance was opened for the employee.
	Get(ctx context.Context, employeeID string) (Balance, error)

	// Open stores the starting balance. An already open balance is left untouched.
	Open(ctx context.Context, employeeID string, remaining map[Type]int) error

	// Deduct subtracts days from one type and returns what is left. The check and
	// the update are atomic; ErrInsufficientBalance leaves the balance unchanged.
	Deduct(ctx context.Context, employeeID string, t Type, days int) (int, error)
}
