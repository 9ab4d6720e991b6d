// Package scale converts between linear parameter domains and the
// perceptually-even coordinate used by sliders. A frequency slider mapped
// through a power curve gives low frequencies, where hearing resolves detail,
// more travel than the top octaves.
package scale

import (
	"fmt"
	"math"
)

// exponent is the power-curve constant shared by both directions
const exponent = 2.5

// ToDisplay maps a linear value to slider coordinates, |v|^(1/2.5).
// ToDisplay(0) = 0.
func ToDisplay(v float64) float64 {
	return math.Pow(math.Abs(v), 1/exponent)
}

// FromDisplay maps a slider coordinate back to the linear domain, d^2.5
func FromDisplay(d float64) float64 {
	return math.Pow(d, exponent)
}

// Format renders a frequency for display: "12K" above 9999 Hz,
// "4.3K" above 999 Hz, otherwise the rounded integer.
func Format(v float64) string {
	switch {
	case v > 9999:
		return fmt.Sprintf("%.0fK", v/1000)
	case v > 999:
		return fmt.Sprintf("%.1fK", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
