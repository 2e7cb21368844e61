package motion

import "time"

// Clock provides the time a motion starts at. Tests inject a fake clock to
// control timing deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock uses wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
