package constants

import "time"

// UI Timing
const (
	// ThrottleWindow bounds how often settings changes reach the engine.
	// Slider drags produce events far faster than the engine can usefully
	// reconfigure its graph
	ThrottleWindow = 250 * time.Millisecond

	// FrameInterval is the render tick period (~30 FPS)
	FrameInterval = 33 * time.Millisecond
)

// Slider Travel
const (
	// SliderSteps is the number of adjustment steps across a slider's range
	SliderSteps = 40

	// SliderWidth is the rendered slider track width in cells
	SliderWidth = 40
)

// Waveform Display
const (
	// WaveformHeight is the number of rows for the waveform strip
	WaveformHeight = 4
)
