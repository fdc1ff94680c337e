package leave

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrBalanceNotFound     = errors.New("leave balance not found")
)
