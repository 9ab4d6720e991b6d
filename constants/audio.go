package constants

import "time"

// Engine Defaults
const (
	// DefaultSampleRate is the speaker mixing rate in Hz
	DefaultSampleRate = 44100

	// DefaultBufferLen is the speaker buffer duration; larger values
	// survive UI stalls at the cost of parameter latency
	DefaultBufferLen = 100 * time.Millisecond

	// ResampleQuality is the beep resampler quality (1-64)
	ResampleQuality = 4
)

// Filter Bounds
const (
	// CutoffMin and CutoffMax bound the low-pass cutoff in Hz
	CutoffMin = 10.0
	CutoffMax = 22000.0

	// CutoffBypass marks the cutoff above which the filter passes through
	CutoffBypass = 20000.0
)

// Playback Rate Bounds
const (
	SpeedMin = 0.1
	SpeedMax = 2.0
)

// Dynamics
const (
	// LimiterCeiling is the hard output ceiling when the limiter engages
	LimiterCeiling = 0.98

	// CompressorAttack and CompressorRelease shape the envelope follower
	CompressorAttack  = 5 * time.Millisecond
	CompressorRelease = 50 * time.Millisecond
)

// Reverb
const (
	// ReverbFeedback is the comb feedback gain at full wet mix
	ReverbFeedback = 0.78

	// ReverbAllpassGain is the diffusion allpass coefficient
	ReverbAllpassGain = 0.7
)

// Level Meter
const (
	// LevelTapSamples is the ring buffer size for output level capture
	LevelTapSamples = 2048
)
