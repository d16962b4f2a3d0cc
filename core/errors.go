package core

import "errors"

var (
	// Timer configuration
	ErrZeroReload       = errors.New("zero_reload")
	ErrReloadTooLarge   = errors.New("reload_too_large")
	ErrUnsupportedClock = errors.New("unsupported_clock")
	ErrTimerArmed       = errors.New("timer_already_armed")
	ErrClockNotRunning  = errors.New("clock_not_running")

	// Output pin
	ErrPinUnavailable = errors.New("pin_unavailable")
)
