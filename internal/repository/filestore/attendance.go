package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
)

// attendance.txt columns
const (
	colAttEmployeeID = iota
	colAttDate
	colAttLogin
	colAttLogout
)

type attendanceRepository struct {
	path string
}

func NewAttendanceRepository(path string) attendance.AttendanceRepository {
	return &attendanceRepository{path: path}
}

// load parses every row of the file for one employee. Rows whose date does not
// parse, the header among them, are ignored.
func (r *attendanceRepository) load(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readRows(r.path, ',')
	if err != nil {
		return nil, err
	}

	var records []attendance.Record
	for _, row := range rows {
		if row[colAttEmployeeID] != employeeID {
			continue
		}
		date, err := time.Parse(attendance.DateLayout, field(row, colAttDate))
		if err != nil {
			continue
		}
		records = append(records, attendance.Record{
			EmployeeID: employeeID,
			Date:       date,
			Punch: attendance.TimePunch{
				Login:  field(row, colAttLogin),
				Logout: field(row, colAttLogout),
			},
		})
	}
	return records, nil
}

// ListByEmployeeAndPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period attendance.Period) ([]attendance.Record, error) {
	all, err := r.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var records []attendance.Record
	for _, rec := range all {
		if period.Contains(rec.Date) {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, attendance.ErrNoAttendance
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// ListMonths implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListMonths(ctx context.Context, employeeID string) ([]attendance.Month, error) {
	all, err := r.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	seen := make(map[attendance.Month]struct{})
	months := []attendance.Month{}
	for _, rec := range all {
		m := attendance.Month{Year: rec.Date.Year(), Month: rec.Date.Month()}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months, nil
}
