package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tonedeck/tonedeck/constants"
	"github.com/tonedeck/tonedeck/scale"
)

// blockChars provides 8-level vertical resolution for waveform columns
var blockChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleWave     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleLevel    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Draw renders the full deck for one frame
func Draw(s tcell.Screen, m *Model) {
	s.Clear()
	width, _ := s.Size()

	drawText(s, 0, 0, styleTitle, "tonedeck")
	drawText(s, 10, 0, styleDim, "terminal audio effects deck")

	drawStatus(s, 1, width, m)

	waveTop := 3
	drawWaveform(s, waveTop, width, m.Peaks)

	sliderTop := waveTop + constants.WaveformHeight + 1
	labels := []string{"cutoff", "speed", "reverb", "limit", "volume"}
	for i := Slider(0); i < sliderCount; i++ {
		drawSlider(s, sliderTop+int(i), m, i, labels[i])
	}

	levelRow := sliderTop + int(sliderCount) + 1
	drawLevel(s, levelRow, m.Level)

	if m.Settings.LoadErr != "" {
		drawText(s, 0, levelRow+1, styleError, "load failed: "+m.Settings.LoadErr)
	}

	drawText(s, 0, levelRow+2, styleDim,
		"space play/stop  j/k select  h/l adjust  o loop  n/p file  c changelog  q quit")

	if m.ShowChangelog {
		drawChangelog(s, width, m)
	}

	s.Show()
}

func drawStatus(s tcell.Screen, y, width int, m *Model) {
	name := "no file"
	if m.Settings.File != "" {
		name = filepath.Base(m.Settings.File)
	}

	line := fmt.Sprintf("%s  [%s]  %s / %s", name, m.Transport,
		formatDur(m.Position), formatDur(m.Settings.Duration))
	if m.Settings.Loop {
		line += "  loop"
	}
	if m.Loading {
		line += "  loading " + filepath.Base(m.Settings.NextFile)
	}
	drawText(s, 0, y, styleDefault, line)

	if m.Silent {
		notice := "no audio device"
		drawText(s, width-len(notice), y, styleDim, notice)
	}
}

// drawWaveform renders per-column peaks as vertical block bars
func drawWaveform(s tcell.Screen, top, width int, peaks []float64) {
	h := constants.WaveformHeight
	if len(peaks) == 0 {
		drawText(s, 0, top+h-1, styleDim, "(no waveform)")
		return
	}

	for x := 0; x < width && x < len(peaks); x++ {
		eighths := int(peaks[x] * float64(h) * 8)
		if eighths > h*8 {
			eighths = h * 8
		}
		for row := 0; row < h; row++ {
			// row 0 is the bottom of the bar
			y := top + h - 1 - row
			filled := eighths - row*8
			switch {
			case filled >= 8:
				s.SetContent(x, y, '█', nil, styleWave)
			case filled > 0:
				s.SetContent(x, y, blockChars[filled-1], nil, styleWave)
			}
		}
	}
}

func drawSlider(s tcell.Screen, y int, m *Model, id Slider, label string) {
	set := m.Settings

	var frac float64
	var value string
	switch id {
	case SliderCutoff:
		dMin := scale.ToDisplay(constants.CutoffMin)
		dMax := scale.ToDisplay(constants.CutoffMax)
		frac = (scale.ToDisplay(set.Cutoff) - dMin) / (dMax - dMin)
		value = scale.Format(set.Cutoff) + "Hz"
	case SliderSpeed:
		frac = (set.Speed - constants.SpeedMin) / (constants.SpeedMax - constants.SpeedMin)
		value = fmt.Sprintf("%.2fx", set.Speed)
	case SliderReverb:
		frac = set.Reverb
		value = fmt.Sprintf("%.0f%%", set.Reverb*100)
	case SliderLimit:
		frac = set.Limit
		value = fmt.Sprintf("%.0f%%", set.Limit*100)
	case SliderVolume:
		frac = set.Volume / 2
		value = fmt.Sprintf("%.0f%%", set.Volume*100)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	style := styleDim
	marker := "  "
	if id == m.Selected {
		style = styleSelected
		marker = "> "
	}

	drawText(s, 0, y, style, fmt.Sprintf("%s%-7s", marker, label))

	trackX := 10
	filled := int(frac * constants.SliderWidth)
	for i := 0; i < constants.SliderWidth; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		s.SetContent(trackX+i, y, r, nil, style)
	}
	drawText(s, trackX+constants.SliderWidth+2, y, style, value)
}

func drawLevel(s tcell.Screen, y int, level float64) {
	drawText(s, 2, y, styleDim, "out")
	filled := int(level * constants.SliderWidth)
	for i := 0; i < constants.SliderWidth; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		s.SetContent(10+i, y, r, nil, styleLevel)
	}
}

func drawChangelog(s tcell.Screen, width int, m *Model) {
	x := 4
	y := 2
	drawText(s, x, y, styleTitle, "changelog")
	y++

	if m.ChangelogNote != "" {
		drawText(s, x, y, styleDim, m.ChangelogNote)
		return
	}

	for _, rel := range m.Releases {
		drawText(s, x, y, styleSelected, fmt.Sprintf("%s (%s)", rel.Version, rel.Date))
		y++
		for _, note := range rel.Notes {
			// Truncate by runes; drawText places one rune per cell
			runes := []rune(note)
			if avail := width - x - 4; len(runes) > avail {
				if avail <= 0 {
					continue
				}
				runes = runes[:avail]
			}
			drawText(s, x+2, y, styleDefault, string(runes))
			y++
		}
		y++
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// formatDur renders mm:ss
func formatDur(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
