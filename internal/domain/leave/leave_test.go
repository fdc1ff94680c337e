package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for raw, want := range map[string]Type{
		"Sick":       TypeSick,
		" VACATION ": TypeVacation,
		"emergency":  TypeEmergency,
	} {
		got, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseType("maternity")
	assert.False(t, ok)
	_, ok = ParseType("")
	assert.False(t, ok)
}

func TestRequest_Days(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1, Request{StartDate: day(3), EndDate: day(3)}.Days())
	assert.Equal(t, 5, Request{StartDate: day(3), EndDate: day(7)}.Days())
	assert.Equal(t, 3, Request{
		StartDate: time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}.Days())
}

func TestRequestLeaveRequest_Validate(t *testing.T) {
	req := RequestLeaveRequest{LeaveType: "Vacation", StartDate: "2024-06-03", EndDate: "2024-06-05", Reason: " family trip "}
	require.NoError(t, req.Validate())

	r := req.ToRequest("10001")
	assert.Equal(t, TypeVacation, r.Type)
	assert.Equal(t, "10001", r.EmployeeID)
	assert.Equal(t, "family trip", r.Reason)
	assert.Equal(t, 3, r.Days())

	tests := []struct {
		name  string
		req   RequestLeaveRequest
		field string
	}{
		{"missing type", RequestLeaveRequest{StartDate: "2024-06-03", EndDate: "2024-06-03"}, "leave_type"},
		{"unknown type", RequestLeaveRequest{LeaveType: "sabbatical", StartDate: "2024-06-03", EndDate: "2024-06-03"}, "leave_type"},
		{"bad start", RequestLeaveRequest{LeaveType: "sick", StartDate: "06/03/2024", EndDate: "2024-06-03"}, "start_date"},
		{"bad end", RequestLeaveRequest{LeaveType: "sick", StartDate: "2024-06-03"}, "end_date"},
		{"end before start", RequestLeaveRequest{LeaveType: "sick", StartDate: "2024-06-05", EndDate: "2024-06-03"}, "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestNewBalanceResponse_ListsEveryType(t *testing.T) {
	resp := NewBalanceResponse(Balance{EmployeeID: "10001", Remaining: map[Type]int{TypeVacation: 2}})

	assert.Equal(t, []TypeBalanceResponse{
		{LeaveType: TypeSick, Remaining: 0},
		{LeaveType: TypeVacation, Remaining: 2},
		{LeaveType: TypeEmergency, Remaining: 0},
	}, resp.Balances)
}
