package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tonedeck/tonedeck/constants"
	"github.com/tonedeck/tonedeck/scale"
	"github.com/tonedeck/tonedeck/session"
)

// Action is a side effect requested by input beyond settings ops
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggle
)

// HandleKey maps a key event to settings ops and an action. Selection and
// overlay state live on the model; parameter changes go through the reducer.
func HandleKey(ev *tcell.EventKey, m *Model) ([]session.Op, Action) {
	if m.ShowChangelog {
		// Any key closes the overlay
		m.ShowChangelog = false
		return nil, ActionNone
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, ActionQuit
	case tcell.KeyUp:
		m.Selected = (m.Selected + sliderCount - 1) % sliderCount
		return nil, ActionNone
	case tcell.KeyDown:
		m.Selected = (m.Selected + 1) % sliderCount
		return nil, ActionNone
	case tcell.KeyLeft:
		return adjust(m, -1), ActionNone
	case tcell.KeyRight:
		return adjust(m, +1), ActionNone
	}

	if ev.Key() != tcell.KeyRune {
		return nil, ActionNone
	}

	switch ev.Rune() {
	case 'q':
		return nil, ActionQuit
	case ' ':
		return nil, ActionToggle
	case 'k':
		m.Selected = (m.Selected + sliderCount - 1) % sliderCount
	case 'j':
		m.Selected = (m.Selected + 1) % sliderCount
	case 'h':
		return adjust(m, -1), ActionNone
	case 'l':
		return adjust(m, +1), ActionNone
	case 'o':
		return []session.Op{session.SetLoop{On: !m.Settings.Loop}}, ActionNone
	case 'n':
		return cycleFile(m, +1), ActionNone
	case 'p':
		return cycleFile(m, -1), ActionNone
	case 'c':
		m.ShowChangelog = true
	}
	return nil, ActionNone
}

// adjust steps the selected slider by one increment. The cutoff steps in
// the display domain so slider travel feels even across the range.
func adjust(m *Model, dir float64) []session.Op {
	s := m.Settings
	switch m.Selected {
	case SliderCutoff:
		dMin := scale.ToDisplay(constants.CutoffMin)
		dMax := scale.ToDisplay(constants.CutoffMax)
		step := (dMax - dMin) / constants.SliderSteps
		d := scale.ToDisplay(s.Cutoff) + dir*step
		return []session.Op{session.SetCutoff{Hz: scale.FromDisplay(d)}}
	case SliderSpeed:
		step := (constants.SpeedMax - constants.SpeedMin) / constants.SliderSteps
		return []session.Op{session.SetSpeed{Ratio: s.Speed + dir*step}}
	case SliderReverb:
		return []session.Op{session.SetReverb{Mix: s.Reverb + dir/constants.SliderSteps}}
	case SliderLimit:
		return []session.Op{session.SetLimit{Amount: s.Limit + dir/constants.SliderSteps}}
	case SliderVolume:
		return []session.Op{session.SetVolume{Gain: s.Volume + dir*2/constants.SliderSteps}}
	}
	return nil
}

// cycleFile selects the next or previous playable file in the directory
func cycleFile(m *Model, dir int) []session.Op {
	if len(m.Files) == 0 {
		return nil
	}
	m.FileIndex = (m.FileIndex + dir + len(m.Files)) % len(m.Files)
	return []session.Op{session.RequestLoad{Path: m.Files[m.FileIndex]}}
}
