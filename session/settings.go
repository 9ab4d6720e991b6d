// Package session holds the state-synchronization layer between the UI and
// the audio engine: an immutable-update settings record with a tagged-op
// reducer, a trailing-edge throttle gate, and the controller that owns the
// engine handle.
package session

import (
	"time"

	"github.com/tonedeck/tonedeck/audio"
	"github.com/tonedeck/tonedeck/constants"
)

// Phase is the coarse engine lifecycle: init until the audio graph has been
// wired exactly once, ready thereafter. The transition never reverts.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseReady
)

// String returns the phase name
func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "init"
}

// Settings is the user-chosen parameter record. Updated only by value
// through Apply; the controller never mutates it, it requests follow-up
// ops instead.
type Settings struct {
	Cutoff float64 // low-pass cutoff, Hz
	Speed  float64 // playback-rate multiplier
	Loop   bool
	Reverb float64 // wet mix, 0-1
	Limit  float64 // compressor amount, 0-1
	Volume float64 // linear gain, 0-2

	File     string // currently loaded source, "" if none
	NextFile string // selected source awaiting load, "" if none
	LoadSeq  uint64 // monotonic load request counter, bumped per RequestLoad
	Duration time.Duration
	LoadErr  string // last load failure, cleared on the next request

	Phase Phase
}

// Defaults returns the mount-time settings: filter fully open, unity
// speed and volume, looping on
func Defaults() Settings {
	return Settings{
		Cutoff: constants.CutoffMax,
		Speed:  1.0,
		Loop:   true,
		Volume: 1.0,
	}
}

// Params extracts the engine parameter set from the settings snapshot
func (s Settings) Params() audio.Params {
	return audio.Params{
		Cutoff: s.Cutoff,
		Speed:  s.Speed,
		Loop:   s.Loop,
		Reverb: s.Reverb,
		Limit:  s.Limit,
		Volume: s.Volume,
	}
}

// Op is a tagged settings update. Every state change goes through Apply so
// transitions stay deterministic and testable.
type Op interface{ isOp() }

// SetCutoff updates the low-pass cutoff in Hz
type SetCutoff struct{ Hz float64 }

// SetSpeed updates the playback-rate multiplier
type SetSpeed struct{ Ratio float64 }

// SetLoop updates the loop flag
type SetLoop struct{ On bool }

// SetReverb updates the reverb wet mix
type SetReverb struct{ Mix float64 }

// SetLimit updates the compressor amount
type SetLimit struct{ Amount float64 }

// SetVolume updates the master gain
type SetVolume struct{ Gain float64 }

// RequestLoad selects a new source file for loading
type RequestLoad struct{ Path string }

// LoadCompleted promotes the pending file to current. Emitted by the
// controller when a load resolves.
type LoadCompleted struct {
	Path     string
	Duration time.Duration
}

// LoadFailed surfaces a decode failure. The prior file stays current and
// the pending slot clears so the user can retry.
type LoadFailed struct {
	Path string
	Err  error
}

// EngineWired marks the one-time init→ready transition
type EngineWired struct{}

func (SetCutoff) isOp()     {}
func (SetSpeed) isOp()      {}
func (SetLoop) isOp()       {}
func (SetReverb) isOp()     {}
func (SetLimit) isOp()      {}
func (SetVolume) isOp()     {}
func (RequestLoad) isOp()   {}
func (LoadCompleted) isOp() {}
func (LoadFailed) isOp()    {}
func (EngineWired) isOp()   {}

// Apply is the reducer: returns a new Settings with op merged in. Range
// ops clamp to bounds; completion ops for a path that is no longer the
// latest request are ignored.
func Apply(s Settings, op Op) Settings {
	switch op := op.(type) {
	case SetCutoff:
		s.Cutoff = clamp(op.Hz, constants.CutoffMin, constants.CutoffMax)
	case SetSpeed:
		s.Speed = clamp(op.Ratio, constants.SpeedMin, constants.SpeedMax)
	case SetLoop:
		s.Loop = op.On
	case SetReverb:
		s.Reverb = clamp(op.Mix, 0, 1)
	case SetLimit:
		s.Limit = clamp(op.Amount, 0, 1)
	case SetVolume:
		s.Volume = clamp(op.Gain, 0, 2)
	case RequestLoad:
		if op.Path == "" {
			return s
		}
		s.NextFile = op.Path
		s.LoadSeq++
		s.LoadErr = ""
	case LoadCompleted:
		if op.Path != s.NextFile {
			// Stale completion for a superseded request
			return s
		}
		s.File = op.Path
		s.NextFile = ""
		s.Duration = op.Duration
	case LoadFailed:
		if op.Path != s.NextFile {
			return s
		}
		s.NextFile = ""
		s.LoadErr = op.Err.Error()
	case EngineWired:
		if s.Phase == PhaseInit {
			s.Phase = PhaseReady
		}
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
