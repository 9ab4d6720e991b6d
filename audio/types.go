package audio

import (
	"errors"
)

// TransportState reports whether the engine is producing audible playback
type TransportState int

const (
	TransportStopped TransportState = iota
	TransportStarted
)

// String returns the transport state name
func (s TransportState) String() string {
	if s == TransportStarted {
		return "started"
	}
	return "stopped"
}

// Params is the full set of engine parameters pushed on every sync.
// Pushing unchanged values is deliberate: the engine stays authoritative
// and missed-update bugs from stale snapshots cannot accumulate.
type Params struct {
	Cutoff float64 // low-pass cutoff, Hz
	Speed  float64 // playback-rate multiplier
	Loop   bool    // restart at end of source
	Reverb float64 // wet mix, 0-1
	Limit  float64 // compressor/limiter amount, 0-1
	Volume float64 // linear gain, 0-2
}

// Sentinel errors
var (
	ErrNotWired          = errors.New("audio engine not wired")
	ErrAlreadyWired      = errors.New("audio engine already wired")
	ErrNoSource          = errors.New("no audio source loaded")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
