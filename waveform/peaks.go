// Package waveform reduces decoded audio to per-column peak values for
// terminal display. Extraction is a fire-and-forget pass over a fresh
// streamer, never the one being played.
package waveform

import (
	"math"

	"github.com/gopxl/beep"
)

// chunkSize bounds per-call allocation while streaming
const chunkSize = 4096

// Peaks streams n samples from s and returns width columns, each the
// absolute peak of its bucket, clamped to [0, 1]. Returns nil for empty
// input or non-positive width.
func Peaks(s beep.Streamer, n, width int) []float64 {
	if s == nil || n <= 0 || width <= 0 {
		return nil
	}

	peaks := make([]float64, width)
	buf := make([][2]float64, chunkSize)
	pos := 0

	for pos < n {
		m, ok := s.Stream(buf)
		if m == 0 && !ok {
			break
		}
		for i := 0; i < m; i++ {
			col := (pos + i) * width / n
			if col >= width {
				col = width - 1
			}
			v := math.Max(math.Abs(buf[i][0]), math.Abs(buf[i][1]))
			if v > peaks[col] {
				peaks[col] = v
			}
		}
		pos += m
	}

	for i := range peaks {
		if peaks[i] > 1 {
			peaks[i] = 1
		}
	}
	return peaks
}
