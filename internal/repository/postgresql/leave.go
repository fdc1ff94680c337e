package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Get implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT leave_type, remaining
		FROM payroll_leave_balances
		WHERE employee_id = $1
	`, employeeID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	b := leave.Balance{EmployeeID: employeeID, Remaining: make(map[leave.Type]int)}
	for rows.Next() {
		var (
			leaveType string
			remaining int
		)
		if err := rows.Scan(&leaveType, &remaining); err != nil {
			return leave.Balance{}, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		b.Remaining[leave.Type(leaveType)] = remaining
	}
	if err := rows.Err(); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to iterate leave balance: %w", err)
	}
	if len(b.Remaining) == 0 {
		return leave.Balance{}, fmt.Errorf("%w: %s", leave.ErrBalanceNotFound, employeeID)
	}

	return b, nil
}

// Open implements leave.BalanceRepository. One statement inserts every type,
// so concurrent first requests cannot leave a half-open balance.
func (l *leaveBalanceRepositoryImpl) Open(ctx context.Context, employeeID string, remaining map[leave.Type]int) error {
	q := GetQuerier(ctx, l.db)

	types := make([]string, 0, len(remaining))
	days := make([]int32, 0, len(remaining))
	for t, d := range remaining {
		types = append(types, string(t))
		days = append(days, int32(d))
	}

	_, err := q.Exec(ctx, `
		INSERT INTO payroll_leave_balances (employee_id, leave_type, remaining)
		SELECT $1, t.leave_type, t.remaining
		FROM unnest($2::text[], $3::int[]) AS t(leave_type, remaining)
		ON CONFLICT (employee_id, leave_type) DO NOTHING
	`, employeeID, types, days)
	if err != nil {
		return fmt.Errorf("failed to open leave balance for employee %s: %w", employeeID, err)
	}
	return nil
}

// Deduct implements leave.BalanceRepository. The guarded UPDATE makes the
// balance check and the deduction one statement.
func (l *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, t leave.Type, days int) (int, error) {
	q := GetQuerier(ctx, l.db)

	var remaining int
	err := q.QueryRow(ctx, `
		UPDATE payroll_leave_balances
		SET remaining = remaining - $3
		WHERE employee_id = $1 AND leave_type = $2 AND remaining >= $3
		RETURNING remaining
	`, employeeID, string(t), days).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to deduct %s leave for employee %s: %w", t, employeeID, err)
	}

	err = q.QueryRow(ctx, `
		SELECT remaining
		FROM payroll_leave_balances
		WHERE employee_id = $1 AND leave_type = $2
	`, employeeID, string(t)).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", leave.ErrBalanceNotFound, employeeID)
		}
		return 0, fmt.Errorf("failed to get %s leave for employee %s: %w", t, employeeID, err)
	}
	return remaining, fmt.Errorf("%w: %d %s day(s) left, %d requested", leave.ErrInsufficientBalance, remaining, t, days)
}
