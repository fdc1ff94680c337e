package payroll

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid payroll input")
	ErrInvalidPeriod   = errors.New("invalid payroll period")
	ErrInvalidSchedule = errors.New("invalid deduction schedule")
	ErrEmptyRegister   = errors.New("no payslip could be generated for the period")
)
