package attendance

import "errors"

var (
	ErrNoAttendance      = errors.New("no attendance recorded for period")
	ErrInvalidPeriod     = errors.New("invalid attendance period")
	ErrLogoutBeforeLogin = errors.New("logout is earlier than login")
)
