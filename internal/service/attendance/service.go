package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/timeofday"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	aggregator *Aggregator
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, aggregator *Aggregator) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		aggregator:           aggregator,
	}
}

// ParseTime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ParseTime(ctx context.Context, req attendance.ParseTimeRequest) (attendance.ParseTimeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ParseTimeResponse{}, err
	}

	t, err := timeofday.Parse(req.Raw)
	if err != nil {
		return attendance.ParseTimeResponse{}, validator.ValidationErrors{{
			Field:   "raw",
			Message: "unrecognized time, expected H:mm, HH:mm, H:mm:ss or HH:mm:ss",
		}}
	}

	return attendance.ParseTimeResponse{
		Time:                 t.String(),
		Hour:                 t.Hour(),
		Minute:               t.Minute(),
		Second:               t.Second(),
		MinutesSinceMidnight: t.Minutes(),
	}, nil
}

// Aggregate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, req attendance.AggregateRequest) (attendance.AggregateResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AggregateResponse{}, err
	}

	punches := req.TimePunches()
	days := make([]attendance.DayResponse, len(punches))
	totals := s.aggregator.Fold(punches, func(i int, dayTotals attendance.DayTotals, err error) {
		p := req.Punches[i]
		day := attendance.DayResponse{Date: p.Date, Login: p.Login, Logout: p.Logout}
		if err != nil {
			skippedPunch("", p.Date, punches[i], err)
			day.Skipped = true
			day.Reason = err.Error()
		} else {
			day.WorkedMinutes = dayTotals.WorkedMinutes
			day.LateMinutes = dayTotals.LateMinutes
			day.OvertimeMinutes = dayTotals.OvertimeMinutes
		}
		days[i] = day
	})

	return attendance.AggregateResponse{
		Totals: attendance.NewPeriodTotalsResponse(totals),
		Days:   days,
	}, nil
}

// GetPeriodTotals implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetPeriodTotals(ctx context.Context, employeeID string, period attendance.Period) (attendance.PeriodTotals, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.PeriodTotals{}, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndPeriod(ctx, employeeID, period)
	if err != nil {
		if errors.Is(err, attendance.ErrNoAttendance) {
			slog.Info("No attendance in period", "employee_id", employeeID, "period", period.Label())
			return attendance.PeriodTotals{}, nil
		}
		return attendance.PeriodTotals{}, fmt.Errorf("failed to list attendance for employee %s: %w", employeeID, err)
	}

	punches := make([]attendance.TimePunch, len(records))
	for i, r := range records {
		punches[i] = r.Punch
	}

	totals := s.aggregator.AggregateFunc(punches, func(i int, err error) {
		skippedPunch(employeeID, records[i].Date.Format(time.DateOnly), records[i].Punch, err)
	})
	return totals, nil
}

// ListMonths implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMonths(ctx context.Context, employeeID string) (attendance.ListMonthsResponse, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.ListMonthsResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}

	months, err := s.AttendanceRepository.ListMonths(ctx, employeeID)
	if err != nil {
		return attendance.ListMonthsResponse{}, fmt.Errorf("failed to list attendance months: %w", err)
	}

	resp := attendance.ListMonthsResponse{
		EmployeeID: employeeID,
		Months:     make([]attendance.MonthResponse, 0, len(months)),
	}
	for _, m := range months {
		resp.Months = append(resp.Months, attendance.NewMonthResponse(m))
	}
	return resp, nil
}

// skippedPunch records a punch the aggregator could not use. employeeID and
// date may be empty for ad-hoc aggregation requests.
func skippedPunch(employeeID, date string, p attendance.TimePunch, err error) {
	metrics.PunchesSkipped.Inc()
	slog.Warn("Skipping unusable attendance punch",
		"employee_id", employeeID,
		"date", date,
		"login", p.Login,
		"logout", p.Logout,
		"error", err,
	)
}
