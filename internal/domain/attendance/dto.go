package attendance

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// TIME PARSING DTOs
// ========================================

type ParseTimeRequest struct {
	Raw string `json:"raw"`
}

func (r *ParseTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Raw) {
		errs = append(errs, validator.ValidationError{
			Field:   "raw",
			Message: "raw is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ParseTimeResponse struct {
	Time                 string `json:"time"`
	Hour                 int    `json:"hour"`
	Minute               int    `json:"minute"`
	Second               int    `json:"second"`
	MinutesSinceMidnight int    `json:"minutes_since_midnight"`
}

// ========================================
// AGGREGATION DTOs
// ========================================

type PunchRequest struct {
	Date   string `json:"date,omitempty"` // YYYY-MM-DD, informational
	Login  string `json:"login"`
	Logout string `json:"logout"`
}

type AggregateRequest struct {
	Punches []PunchRequest `json:"punches"`
}

func (r *AggregateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "punches",
			Message: "at least one punch is required",
		})
	}
	for i, p := range r.Punches {
		if p.Date == "" {
			continue
		}
		if _, ok := validator.IsValidDate(p.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TimePunches strips the request down to what the aggregator consumes.
func (r *AggregateRequest) TimePunches() []TimePunch {
	punches := make([]TimePunch, len(r.Punches))
	for i, p := range r.Punches {
		punches[i] = TimePunch{Login: p.Login, Logout: p.Logout}
	}
	return punches
}

type DayResponse struct {
	Date            string `json:"date,omitempty"`
	Login           string `json:"login"`
	Logout          string `json:"logout"`
	WorkedMinutes   int    `json:"worked_minutes"`
	LateMinutes     int    `json:"late_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Skipped         bool   `json:"skipped"`
	Reason          string `json:"reason,omitempty"`
}

type PeriodTotalsResponse struct {
	WorkedMinutes   int             `json:"worked_minutes"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	LateMinutes     int             `json:"late_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	DaysCounted     int             `json:"days_counted"`
	DaysSkipped     int             `json:"days_skipped"`
}

func NewPeriodTotalsResponse(t PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		WorkedMinutes:   t.WorkedMinutes,
		HoursWorked:     t.HoursWorked().Round(2),
		LateMinutes:     t.LateMinutes,
		OvertimeMinutes: t.OvertimeMinutes,
		DaysCounted:     t.DaysCounted,
		DaysSkipped:     t.DaysSkipped,
	}
}

type AggregateResponse struct {
	Totals PeriodTotalsResponse `json:"totals"`
	Days   []DayResponse        `json:"days"`
}

// ========================================
// MONTH DISCOVERY DTOs
// ========================================

type MonthResponse struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

func NewMonthResponse(m Month) MonthResponse {
	return MonthResponse{
		Year:  m.Year,
		Month: int(m.Month),
		Label: m.String(),
		Name:  m.Month.String(),
	}
}

type ListMonthsResponse struct {
	EmployeeID string          `json:"employee_id"`
	Months     []MonthResponse `json:"months"`
}
