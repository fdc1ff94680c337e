package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrMalformedCompensation = errors.New("employee compensation record is malformed")
)
