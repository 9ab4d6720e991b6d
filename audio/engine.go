package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/tonedeck/tonedeck/constants"
	"github.com/tonedeck/tonedeck/waveform"
)

// Engine owns the playback graph. The chain is assembled exactly once by
// Wire and never torn down; file swaps only replace the source at its head:
//
//	source → speed resampler → low-pass → compressor → reverb → volume → ctrl → tap → speaker
//
// If no output device is available the engine drops into silent mode:
// decoding and waveform extraction still work, transport calls are no-ops.
type Engine struct {
	cfg    *Config
	rate   beep.SampleRate
	format beep.Format

	wired   atomic.Bool
	silent  atomic.Bool
	playing atomic.Bool

	mu       sync.Mutex // serializes Load against transport calls
	buf      *beep.Buffer
	duration time.Duration

	source *loopSource
	speed  *beep.Resampler
	filter *lowPass
	comp   *compressor
	verb   *reverb
	volume *effects.Volume
	ctrl   *beep.Ctrl
	out    *tap
}

// NewEngine creates an unwired engine
func NewEngine(cfg ...*Config) *Engine {
	config := DefaultConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}
	return &Engine{
		cfg:    config,
		rate:   beep.SampleRate(config.SampleRate),
		format: beep.Format{SampleRate: beep.SampleRate(config.SampleRate), NumChannels: 2, Precision: 2},
	}
}

// Wire assembles the processing chain and opens the speaker. Called exactly
// once; the second call returns ErrAlreadyWired.
func (e *Engine) Wire() error {
	if !e.wired.CompareAndSwap(false, true) {
		return ErrAlreadyWired
	}

	e.source = &loopSource{loop: true}
	e.source.onEnd = func() {
		// Runs inside the speaker's mixing pass, lock already held
		e.ctrl.Paused = true
		e.playing.Store(false)
	}
	e.speed = beep.ResampleRatio(constants.ResampleQuality, 1.0, e.source)
	e.filter = newLowPass(e.speed, e.rate)
	e.comp = newCompressor(e.filter, e.rate)
	e.verb = newReverb(e.comp, e.rate)
	e.volume = &effects.Volume{Streamer: e.verb, Base: 2, Volume: 0}
	e.ctrl = &beep.Ctrl{Streamer: e.volume, Paused: true}
	e.out = newTap(e.ctrl, constants.LevelTapSamples)

	if !e.cfg.Enabled {
		e.silent.Store(true)
		return nil
	}

	if err := speaker.Init(e.rate, e.rate.N(e.cfg.BufferLen)); err != nil {
		e.silent.Store(true)
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(e.out)
	return nil
}

// Load stops playback, decodes the file fully into memory, swaps it in as
// the new source and restarts playback. The decode itself runs without the
// engine mutex so transport calls and waveform extraction stay responsive
// while it is in flight; the caller is responsible for not overlapping Load
// calls with a newer request (single-flight lives in the session
// controller).
func (e *Engine) Load(path string) (time.Duration, error) {
	if !e.wired.Load() {
		return 0, ErrNotWired
	}

	e.mu.Lock()
	e.halt()
	e.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != e.rate {
		s = beep.Resample(constants.ResampleQuality, format.SampleRate, e.rate, s)
	}

	buf := beep.NewBuffer(e.format)
	buf.Append(s)
	dur := e.rate.D(buf.Len())

	e.mu.Lock()
	defer e.mu.Unlock()
	speaker.Lock()
	e.buf = buf
	e.duration = dur
	e.source.src = buf.Streamer(0, buf.Len())
	e.ctrl.Paused = false
	speaker.Unlock()
	e.playing.Store(true)

	return dur, nil
}

// decode picks a decoder by file extension
func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg", ".oga":
		return vorbis.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, ErrUnsupportedFormat
	}
}

// Start begins playback from position zero. No-op without a source.
func (e *Engine) Start() {
	if !e.wired.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	speaker.Lock()
	if e.source.src == nil {
		speaker.Unlock()
		return
	}
	e.source.src.Seek(0)
	e.ctrl.Paused = false
	speaker.Unlock()
	e.playing.Store(true)
}

// Stop halts playback and resets the position to zero
func (e *Engine) Stop() {
	if !e.wired.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.halt()
}

// halt pauses and rewinds without taking e.mu; callers hold it
func (e *Engine) halt() {
	speaker.Lock()
	if e.source.src != nil {
		e.source.src.Seek(0)
	}
	e.ctrl.Paused = true
	speaker.Unlock()
	e.playing.Store(false)
}

// Apply pushes the full parameter set into the live chain. Redundant calls
// are expected and cheap.
func (e *Engine) Apply(p Params) {
	if !e.wired.Load() {
		return
	}

	ratio := p.Speed
	if ratio < constants.SpeedMin {
		ratio = constants.SpeedMin
	}
	if ratio > constants.SpeedMax {
		ratio = constants.SpeedMax
	}

	speaker.Lock()
	e.speed.SetRatio(ratio)
	e.filter.SetCutoff(p.Cutoff)
	e.comp.SetAmount(p.Limit)
	e.verb.SetMix(p.Reverb)
	e.source.loop = p.Loop
	if p.Volume <= 0 {
		// math.Log2(0) is -Inf
		e.volume.Silent = true
	} else {
		e.volume.Silent = false
		e.volume.Volume = math.Log2(p.Volume)
	}
	speaker.Unlock()
}

// State reports the transport state
func (e *Engine) State() TransportState {
	if e.playing.Load() {
		return TransportStarted
	}
	return TransportStopped
}

// Duration returns the length of the loaded source, zero if none
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// Position returns the current playback offset
func (e *Engine) Position() time.Duration {
	if !e.wired.Load() {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	if e.source.src == nil {
		return 0
	}
	return e.rate.D(e.source.src.Position())
}

// Level returns the current output peak for the level meter, 0-1
func (e *Engine) Level() float64 {
	if !e.wired.Load() {
		return 0
	}
	return e.out.Level()
}

// Waveform extracts per-column peaks of the loaded source for display.
// Streams a fresh pass over the decode buffer, independent of playback.
func (e *Engine) Waveform(width int) []float64 {
	e.mu.Lock()
	buf := e.buf
	e.mu.Unlock()

	if buf == nil {
		return nil
	}
	return waveform.Peaks(buf.Streamer(0, buf.Len()), buf.Len(), width)
}

// Silent reports whether the engine is running without an output device
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// Close releases the output device
func (e *Engine) Close() {
	if e.wired.Load() && !e.silent.Load() {
		speaker.Close()
	}
}
