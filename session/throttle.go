package session

import (
	"sync"
	"time"
)

// Gate is a trailing-edge throttle: Set may be called at slider-drag rate,
// the output channel delivers at most one value per window, and the value
// delivered is always the most recent at the moment the window closes. The
// settled value of a burst is therefore never dropped, and values are never
// reordered.
type Gate[T any] struct {
	window time.Duration
	out    chan T

	mu      sync.Mutex
	pending T
	armed   bool
	timer   *time.Timer
	stopped bool
}

// NewGate creates a gate with the given throttle window
func NewGate[T any](window time.Duration) *Gate[T] {
	return &Gate[T]{
		window: window,
		out:    make(chan T, 1),
	}
}

// Set records v as the latest value. Arms the delivery timer if no window
// is currently open; otherwise v supersedes the previously recorded value.
func (g *Gate[T]) Set(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	g.pending = v
	if !g.armed {
		g.armed = true
		g.timer = time.AfterFunc(g.window, g.fire)
	}
}

// fire runs on a timer goroutine. The whole delivery happens under g.mu so
// two fires can never interleave: a stalled timer from an earlier window
// must not re-insert its value after a later window has delivered a newer
// one. Every channel op below is non-blocking, so holding the lock across
// them is safe.
func (g *Gate[T]) fire() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	v := g.pending
	g.armed = false

	select {
	case g.out <- v:
	default:
		// Consumer hasn't drained the previous value; replace it so the
		// latest always wins rather than blocking the timer goroutine
		select {
		case <-g.out:
		default:
		}
		select {
		case g.out <- v:
		default:
		}
	}
}

// Out is the throttled output channel
func (g *Gate[T]) Out() <-chan T {
	return g.out
}

// Stop disarms the gate; subsequent Sets are ignored
func (g *Gate[T]) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
	}
}
