package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

const StatusApproved = "approved"

// ========================================
// REQUEST DTOs
// ========================================

type RequestLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, inclusive
	Reason    string `json:"reason,omitempty"`
}

func (r *RequestLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if _, ok := ParseType(r.LeaveType); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be sick, vacation or emergency",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRequest converts a validated request.
func (r *RequestLeaveRequest) ToRequest(employeeID string) Request {
	t, _ := ParseType(r.LeaveType)
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return Request{
		EmployeeID: employeeID,
		Type:       t,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(r.Reason),
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type TypeBalanceResponse struct {
	LeaveType Type `json:"leave_type"`
	Remaining int  `json:"remaining_days"`
}

type BalanceResponse struct {
	EmployeeID string                `json:"employee_id"`
	Balances   []TypeBalanceResponse `json:"balances"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{EmployeeID: b.EmployeeID, Balances: make([]TypeBalanceResponse, 0, len(Types))}
	for _, t := range Types {
		resp.Balances = append(resp.Balances, TypeBalanceResponse{LeaveType: t, Remaining: b.Remaining[t]})
	}
	return resp
}

type RequestLeaveResponse struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  Type   `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	Remaining  int    `json:"remaining_days"`
}

func NewRequestLeaveResponse(r Request, remaining int) RequestLeaveResponse {
	return RequestLeaveResponse{
		EmployeeID: r.EmployeeID,
		LeaveType:  r.Type,
		StartDate:  r.StartDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		Days:       r.Days(),
		Reason:     r.Reason,
		Status:     StatusApproved,
		Remaining:  remaining,
	}
}
