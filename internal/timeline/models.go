// Package timeline tracks the current position on a geological timeline and
// reports when it crosses period boundaries or reaches historical events.
package timeline

import "fmt"

// RGB is a period's display color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Period is a named span of history, [Begin, End).
type Period struct {
	Name  string
	Begin float64
	End   float64
	Color RGB
}

// Before reports whether t has moved past the period going forward.
func (p Period) Before(t float64) bool {
	return t >= p.End
}

// After reports whether t has moved before the period going backward.
func (p Period) After(t float64) bool {
	return t < p.Begin
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t float64) bool {
	return t >= p.Begin && t < p.End
}

// HistoricalEvent is something that happened at a point in history.
type HistoricalEvent struct {
	Time        float64
	Title       string
	Description string
}
