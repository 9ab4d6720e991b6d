package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// tap sits at the end of the chain and copies a mono mix of the output
// into a ring buffer so the UI can show a level meter without touching
// the speaker lock.
type tap struct {
	streamer beep.Streamer

	mu  sync.Mutex
	buf []float64
	pos int
}

func newTap(s beep.Streamer, size int) *tap {
	return &tap{streamer: s, buf: make([]float64, size)}
}

func (t *tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.streamer.Stream(samples)
	t.mu.Lock()
	for i := 0; i < n; i++ {
		t.buf[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos = (t.pos + 1) % len(t.buf)
	}
	t.mu.Unlock()
	return n, ok
}

func (t *tap) Err() error { return t.streamer.Err() }

// Level returns the peak absolute sample currently in the ring, 0-1
func (t *tap) Level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var peak float64
	for _, v := range t.buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 1 {
		peak = 1
	}
	return peak
}
