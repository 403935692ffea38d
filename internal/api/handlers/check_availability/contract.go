package check_availability

import (
	"context"
	"time"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
