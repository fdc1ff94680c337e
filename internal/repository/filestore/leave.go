package filestore

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
)

// leaveBalanceRepository keeps balances in memory. The flat files carry no
// balance columns, so balances start over from the quota when the process restarts.
type leaveBalanceRepository struct {
	mu       sync.Mutex
	balances map[string]map[leave.Type]int
}

func NewLeaveBalanceRepository() leave.BalanceRepository {
	return &leaveBalanceRepository{balances: make(map[string]map[leave.Type]int)}
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	if err := ctx.Err(); err != nil {
		return leave.Balance{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining, ok := r.balances[employeeID]
	if !ok {
		return leave.Balance{}, fmt.Errorf("%w: %s", leave.ErrBalanceNotFound, employeeID)
	}
	return leave.Balance{EmployeeID: employeeID, Remaining: maps.Clone(remaining)}, nil
}

// Open implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Open(ctx context.Context, employeeID string, remaining map[leave.Type]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.balances[employeeID]; !ok {
		r.balances[employeeID] = maps.Clone(remaining)
	}
	return nil
}

// Deduct implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Deduct(ctx context.Context, employeeID string, t leave.Type, days int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining, ok := r.balances[employeeID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", leave.ErrBalanceNotFound, employeeID)
	}
	if remaining[t] < days {
		return remaining[t], fmt.Errorf("%w: %d %s day(s) left, %d requested", leave.ErrInsufficientBalance, remaining[t], t, days)
	}
	remaining[t] -= days
	return remaining[t], nil
}
