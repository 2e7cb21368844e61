package motion

import (
	"fmt"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// Linear applies no easing.
func Linear(p float64) float64 { return p }

// EaseInOutQuad accelerates through the first half and decelerates through the second.
func EaseInOutQuad(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return -1 + (4-2*p)*p
}

// ParseEasing resolves a configured easing name.
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "in-out-quad", "inoutquad":
		return EaseInOutQuad, nil
	case "linear":
		return Linear, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}
