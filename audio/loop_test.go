package audio

import (
	"errors"
	"testing"
)

var errSeekBroken = errors.New("seek broken")

// memSeeker is a seekable in-memory source for loop tests
type memSeeker struct {
	data    [][2]float64
	pos     int
	seekErr error
}

func (m *memSeeker) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.data) {
		return 0, false
	}
	n := copy(samples, m.data[m.pos:])
	m.pos += n
	return n, true
}

func (m *memSeeker) Err() error    { return nil }
func (m *memSeeker) Len() int      { return len(m.data) }
func (m *memSeeker) Position() int { return m.pos }

func (m *memSeeker) Seek(p int) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	m.pos = p
	return nil
}

func rampData(n int) [][2]float64 {
	data := make([][2]float64, n)
	for i := range data {
		v := float64(i+1) / float64(n)
		data[i] = [2]float64{v, v}
	}
	return data
}

// TestLoopSourceSilenceWithoutSource verifies the chain head streams
// silence before any file is loaded
func TestLoopSourceSilenceWithoutSource(t *testing.T) {
	l := &loopSource{loop: true}

	samples := make([][2]float64, 64)
	samples[3][0] = 0.9 // stale data must be overwritten

	n, ok := l.Stream(samples)
	if !ok || n != 64 {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}
	for i := range samples {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("Sample %d not silent: %v", i, samples[i])
		}
	}
}

// TestLoopSourceWraps verifies looping restarts the source mid-pass
func TestLoopSourceWraps(t *testing.T) {
	l := &loopSource{src: &memSeeker{data: rampData(10)}, loop: true}

	samples := make([][2]float64, 25)
	n, ok := l.Stream(samples)
	if !ok || n != 25 {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}

	// Positions 0, 10, 20 all restart the ramp
	for _, start := range []int{0, 10, 20} {
		if samples[start][0] != 0.1 {
			t.Errorf("Sample %d = %v, want ramp restart 0.1", start, samples[start][0])
		}
	}
}

// TestLoopSourceEnd verifies a non-looping source fires onEnd once,
// rewinds, and pads with silence
func TestLoopSourceEnd(t *testing.T) {
	src := &memSeeker{data: rampData(10)}
	ends := 0
	l := &loopSource{src: src}
	l.onEnd = func() { ends++ }

	samples := make([][2]float64, 30)
	n, ok := l.Stream(samples)
	if !ok || n != 30 {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}

	if ends != 1 {
		t.Errorf("onEnd fired %d times, want 1", ends)
	}
	if src.Position() != 0 {
		t.Errorf("Position %d after end, want rewind to 0", src.Position())
	}
	for i := 10; i < 30; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Sample %d not silent after end: %v", i, samples[i][0])
		}
	}
}

// TestLoopSourceSeekFailure verifies a failed rewind degrades to silence on
// both the looping and non-looping drain paths
func TestLoopSourceSeekFailure(t *testing.T) {
	broken := &memSeeker{data: rampData(10), seekErr: errSeekBroken}

	l := &loopSource{src: broken, loop: true}
	samples := make([][2]float64, 25)
	n, ok := l.Stream(samples)
	if !ok || n != 25 {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}
	for i := 10; i < 25; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Sample %d not silent after failed loop seek: %v", i, samples[i][0])
		}
	}

	broken.pos = 0
	ends := 0
	l = &loopSource{src: broken}
	l.onEnd = func() { ends++ }
	n, ok = l.Stream(samples)
	if !ok || n != 25 {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}
	if ends != 1 {
		t.Errorf("onEnd fired %d times with failed seek, want 1", ends)
	}
	for i := 10; i < 25; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Sample %d not silent after failed end seek: %v", i, samples[i][0])
		}
	}
}
