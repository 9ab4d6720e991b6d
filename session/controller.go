package session

import (
	"log"
	"time"

	"github.com/tonedeck/tonedeck/audio"
)

// Engine is the boundary the controller drives. *audio.Engine implements
// it; tests substitute a fake.
type Engine interface {
	Wire() error
	Load(path string) (time.Duration, error)
	Start()
	Stop()
	Apply(p audio.Params)
	State() audio.TransportState
}

// LoadResult reports a finished load. Delivered on Results so completions
// are applied on the owning event loop, never concurrently.
type LoadResult struct {
	Path     string
	Duration time.Duration
	Err      error
}

// Controller is the synchronization effect. It exclusively owns the engine
// handle: nothing else may call into the engine except through it.
//
// On the first Sync it wires the audio graph and transitions init→ready
// without touching playback. On every later Sync it starts a pending file
// load if one is requested and unconditionally pushes the current
// parameters into the engine.
//
// Loads are single-flight: at most one decode runs at a time, a newer
// request supersedes the one in flight, and the stale completion is
// discarded, so the latest requested file always wins. All methods must be
// called from one goroutine (the event loop); only the load itself runs
// concurrently.
type Controller struct {
	engine  Engine
	phase   Phase
	results chan LoadResult

	inflight     bool
	inflightPath string
	want         string // latest superseding request, loaded after the in-flight one resolves
	lastSeq      uint64 // highest request counter acted on; stale snapshots are ignored
}

// NewController creates a controller around an unwired engine
func NewController(e Engine) *Controller {
	return &Controller{
		engine:  e,
		results: make(chan LoadResult, 1),
	}
}

// Sync reacts to a throttled settings snapshot. Returns follow-up ops for
// the caller to merge (the controller never mutates settings itself).
func (c *Controller) Sync(s Settings) []Op {
	if c.phase == PhaseInit {
		if err := c.engine.Wire(); err != nil {
			// Engine degrades to silent mode on its own; stay interactive
			log.Printf("audio wiring: %v", err)
		}
		c.phase = PhaseReady
		return []Op{EngineWired{}}
	}

	if s.NextFile != "" {
		c.requestLoad(s.NextFile, s.LoadSeq)
	}

	c.engine.Apply(s.Params())
	return nil
}

// requestLoad admits a load request exactly once per counter value. A
// request arriving while another load is in flight is queued as the sole
// successor; only the latest survives.
func (c *Controller) requestLoad(path string, seq uint64) {
	if seq <= c.lastSeq {
		return
	}
	c.lastSeq = seq

	if c.inflight {
		c.want = path
		return
	}
	c.start(path)
}

func (c *Controller) start(path string) {
	c.inflight = true
	c.inflightPath = path
	go func() {
		dur, err := c.engine.Load(path)
		c.results <- LoadResult{Path: path, Duration: dur, Err: err}
	}()
}

// Results delivers load completions to the event loop
func (c *Controller) Results() <-chan LoadResult {
	return c.results
}

// Resolve handles a load completion. If a newer request superseded it, the
// result is discarded and the successor load starts; otherwise it returns
// the op promoting or failing the request.
func (c *Controller) Resolve(r LoadResult) []Op {
	c.inflight = false
	c.inflightPath = ""

	if c.want != "" {
		next := c.want
		c.want = ""
		if next != r.Path {
			c.start(next)
			return nil
		}
		// The successor asked for the same path; accept this result
	}

	if r.Err != nil {
		log.Printf("load %s: %v", r.Path, r.Err)
		return []Op{LoadFailed{Path: r.Path, Err: r.Err}}
	}
	return []Op{LoadCompleted{Path: r.Path, Duration: r.Duration}}
}

// Loading reports whether a load is in flight
func (c *Controller) Loading() bool {
	return c.inflight
}

// TogglePlay flips the engine transport: started stops (position resets to
// zero), stopped starts from zero. No-op before wiring.
func (c *Controller) TogglePlay() {
	if c.phase != PhaseReady {
		return
	}
	if c.engine.State() == audio.TransportStarted {
		c.engine.Stop()
	} else {
		c.engine.Start()
	}
}
