package leave

import (
	"strings"
	"time"
)

type Type string

const (
	TypeSick      Type = "sick"
	TypeVacation  Type = "vacation"
	TypeEmergency Type = "emergency"
)

// Types lists every leave type in display order.
var Types = []Type{TypeSick, TypeVacation, TypeEmergency}

// ParseType matches a leave type case-insensitively ("Sick", " VACATION ").
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Balance is the number of leave days an employee has left, per type.
type Balance struct {
	EmployeeID string
	Remaining  map[Type]int
}

// Request is one leave application. Dates are calendar days in UTC.
type Request struct {
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// Days counts calendar days from StartDate to EndDate, both included.
func (r Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
