package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when a cron expression or timeout is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrAlreadyRunning is returned when Start is called twice
	ErrAlreadyRunning = errors.New("scheduler is already running")
)
