package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/tonedeck/tonedeck/constants"
)

// lowPass is a one-pole low-pass filter streamer. Cutoff changes take
// effect on the next Stream call; above CutoffBypass the filter passes
// samples through untouched so a fully-open slider costs nothing.
type lowPass struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	cutoff   float64
	alpha    float64
	state    [2]float64
}

// newLowPass wraps a streamer with a low-pass filter, initially fully open
func newLowPass(s beep.Streamer, rate beep.SampleRate) *lowPass {
	lp := &lowPass{streamer: s, rate: rate}
	lp.SetCutoff(constants.CutoffMax)
	return lp
}

// SetCutoff updates the cutoff frequency in Hz.
// Caller must hold the speaker lock while the chain is playing.
func (lp *lowPass) SetCutoff(freq float64) {
	if freq < constants.CutoffMin {
		freq = constants.CutoffMin
	}
	if freq > constants.CutoffMax {
		freq = constants.CutoffMax
	}
	lp.cutoff = freq
	lp.alpha = 1 - math.Exp(-2*math.Pi*freq/float64(lp.rate))
}

func (lp *lowPass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = lp.streamer.Stream(samples)

	if lp.cutoff >= constants.CutoffBypass {
		// Track the signal so closing the filter later doesn't click
		if n > 0 {
			lp.state = samples[n-1]
		}
		return n, ok
	}

	for i := 0; i < n; i++ {
		lp.state[0] += lp.alpha * (samples[i][0] - lp.state[0])
		lp.state[1] += lp.alpha * (samples[i][1] - lp.state[1])
		samples[i][0] = lp.state[0]
		samples[i][1] = lp.state[1]
	}
	return n, ok
}

func (lp *lowPass) Err() error { return lp.streamer.Err() }
