package audio

import (
	"github.com/gopxl/beep"
)

// loopSource is the head of the playback chain. It streams silence until a
// source is attached so the downstream graph stays wired to the speaker
// across file swaps, and it implements runtime-togglable looping, which
// beep.Loop cannot do.
//
// All field access happens under the speaker lock: Stream runs inside the
// speaker's mixing pass, and the engine mutates the struct only while
// holding the lock.
type loopSource struct {
	src  beep.StreamSeeker // nil until first load
	loop bool

	// onEnd fires when the source drains with looping off.
	// Called with the speaker lock held.
	onEnd func()
}

func (l *loopSource) Stream(samples [][2]float64) (n int, ok bool) {
	if l.src == nil {
		silence(samples)
		return len(samples), true
	}

	for n < len(samples) {
		m, _ := l.src.Stream(samples[n:])
		n += m
		if n == len(samples) {
			break
		}

		// Source drained mid-pass; rewind to the top either way
		if err := l.src.Seek(0); err != nil {
			if !l.loop && l.onEnd != nil {
				l.onEnd()
			}
			silence(samples[n:])
			return len(samples), true
		}

		if !l.loop {
			// Position reset, playback ends, pad this pass and stay alive
			if l.onEnd != nil {
				l.onEnd()
			}
			silence(samples[n:])
			return len(samples), true
		}
		m, _ = l.src.Stream(samples[n:])
		if m == 0 {
			// Empty source cannot loop
			silence(samples[n:])
			return len(samples), true
		}
		n += m
	}
	return n, true
}

func (l *loopSource) Err() error {
	if l.src == nil {
		return nil
	}
	return l.src.Err()
}

func silence(samples [][2]float64) {
	for i := range samples {
		samples[i][0] = 0
		samples[i][1] = 0
	}
}
