package scale

import (
	"math"
	"testing"
)

// TestRoundTrip verifies FromDisplay inverts ToDisplay across the cutoff range
func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{10, 42, 100, 440, 999, 1000, 4321, 9999, 12000, 22000} {
		got := FromDisplay(ToDisplay(v))
		if math.Abs(got-v) > v*1e-9 {
			t.Errorf("Round trip of %v gave %v", v, got)
		}
	}
}

// TestToDisplayMonotonic verifies higher frequencies always map to higher
// slider positions
func TestToDisplayMonotonic(t *testing.T) {
	prev := ToDisplay(10)
	for v := 11.0; v <= 22000; v += 97 {
		cur := ToDisplay(v)
		if cur <= prev {
			t.Fatalf("ToDisplay not strictly increasing at %v: %v <= %v", v, cur, prev)
		}
		prev = cur
	}
}

// TestToDisplayZero verifies the zero edge case
func TestToDisplayZero(t *testing.T) {
	if got := ToDisplay(0); got != 0 {
		t.Errorf("ToDisplay(0) = %v, want 0", got)
	}
}

// TestFormat verifies the magnitude formatter
func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{4321, "4.3K"},
		{9999, "10.0K"},
		{12000, "12K"},
		{22000, "22K"},
	}

	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
