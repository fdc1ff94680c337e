package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	balances           leave.BalanceRepository
	employeeRepository employee.EmployeeRepository
	quotaCalculator    *QuotaCalculator
}

func NewLeaveService(
	balances leave.BalanceRepository,
	employeeRepository employee.EmployeeRepository,
	quotaCalculator *QuotaCalculator,
) leave.LeaveService {
	if quotaCalculator == nil {
		quotaCalculator = NewQuotaCalculator(nil)
	}
	return &LeaveServiceImpl{
		balances:           balances,
		employeeRepository: employeeRepository,
		quotaCalculator:    quotaCalculator,
	}
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.balance(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(b), nil
}

// RequestLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, employeeID string, req leave.RequestLeaveRequest) (leave.RequestLeaveResponse, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return leave.RequestLeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.RequestLeaveResponse{}, err
	}
	request := req.ToRequest(employeeID)

	if _, err := s.balance(ctx, employeeID); err != nil {
		return leave.RequestLeaveResponse{}, err
	}

	remaining, err := s.balances.Deduct(ctx, employeeID, request.Type, request.Days())
	if err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			slog.Info("Leave request denied",
				"employee_id", employeeID,
				"leave_type", request.Type,
				"days", request.Days(),
				"error", err,
			)
		}
		return leave.RequestLeaveResponse{}, err
	}

	slog.Info("Leave request approved",
		"employee_id", employeeID,
		"leave_type", request.Type,
		"days", request.Days(),
		"remaining", remaining,
	)
	return leave.NewRequestLeaveResponse(request, remaining), nil
}

// balance returns the employee's balance, opening it from the quota table the
// first time the employee is seen.
func (s *LeaveServiceImpl) balance(ctx context.Context, employeeID string) (leave.Balance, error) {
	b, err := s.balances.Get(ctx, employeeID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, err
	}

	if _, err := s.employeeRepository.GetCompensation(ctx, employeeID); err != nil {
		return leave.Balance{}, err
	}
	if err := s.balances.Open(ctx, employeeID, s.quotaCalculator.CalculateQuota()); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to open leave balance for employee %s: %w", employeeID, err)
	}
	slog.Info("Leave balance opened", "employee_id", employeeID)

	return s.balances.Get(ctx, employeeID)
}

func validateEmployeeID(employeeID string) error {
	if validator.IsEmpty(employeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return nil
}
