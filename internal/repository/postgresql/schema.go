package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

// schema holds the tables the payroll engine reads and the leave balances it
// keeps. Punch times are kept as entered so the parser sees the same strings
// the flat files carry.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS payroll_employees (
		id                 TEXT PRIMARY KEY,
		last_name          TEXT NOT NULL DEFAULT '',
		first_name         TEXT NOT NULL DEFAULT '',
		position           TEXT NOT NULL DEFAULT '',
		employment_type    TEXT NOT NULL DEFAULT 'regular',
		basic_salary       NUMERIC(14,2) NOT NULL DEFAULT 0,
		hourly_rate        NUMERIC(14,2) NOT NULL DEFAULT 0,
		rice_subsidy       NUMERIC(14,2) NOT NULL DEFAULT 0,
		phone_allowance    NUMERIC(14,2) NOT NULL DEFAULT 0,
		clothing_allowance NUMERIC(14,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS payroll_attendance (
		employee_id TEXT NOT NULL,
		work_date   DATE NOT NULL,
		log_in      TEXT NOT NULL,
		log_out     TEXT NOT NULL,
		PRIMARY KEY (employee_id, work_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_attendance_date ON payroll_attendance (work_date)`,
	`CREATE TABLE IF NOT EXISTS payroll_leave_balances (
		employee_id TEXT NOT NULL,
		leave_type  TEXT NOT NULL,
		remaining   INTEGER NOT NULL CHECK (remaining >= 0),
		PRIMARY KEY (employee_id, leave_type)
	)`,
}

// EnsureSchema creates the payroll tables when missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
