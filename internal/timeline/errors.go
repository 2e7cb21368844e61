package timeline

import "errors"

var (
	// ErrInvalidPeriodData is returned when a period list is empty, unordered or has gaps.
	ErrInvalidPeriodData = errors.New("invalid period data")

	// ErrInvalidEventData is returned when events are not in ascending time order.
	ErrInvalidEventData = errors.New("invalid event data")

	// ErrDegenerateHistory is returned when the periods span no time at all.
	ErrDegenerateHistory = errors.New("degenerate history: length must be positive")
)
