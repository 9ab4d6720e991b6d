// Package ui renders the deck and maps key events to settings ops. Pure
// presentation: it never talks to the engine, only to the settings reducer
// through the ops it returns.
package ui

import (
	"time"

	"github.com/tonedeck/tonedeck/audio"
	"github.com/tonedeck/tonedeck/changelog"
	"github.com/tonedeck/tonedeck/session"
)

// Slider identifies an adjustable parameter row
type Slider int

const (
	SliderCutoff Slider = iota
	SliderSpeed
	SliderReverb
	SliderLimit
	SliderVolume
	sliderCount
)

// Model is the render snapshot assembled by the event loop each frame
type Model struct {
	Settings  session.Settings
	Transport audio.TransportState
	Position  time.Duration
	Level     float64
	Peaks     []float64
	Loading   bool
	Silent    bool

	Files     []string
	FileIndex int

	Releases      []changelog.Release
	ChangelogNote string // fallback when the changelog failed to load
	ShowChangelog bool

	Selected Slider
}
