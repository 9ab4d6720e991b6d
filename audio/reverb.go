package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tonedeck/tonedeck/constants"
)

// combDelays are classic Schroeder tunings, co-prime so echoes don't stack
var combDelays = []time.Duration{
	29700 * time.Microsecond,
	37100 * time.Microsecond,
	41100 * time.Microsecond,
}

const allpassDelay = 5 * time.Millisecond

// reverb is a small Schroeder reverberator: parallel feedback combs into a
// diffusion allpass, blended with the dry signal by the wet mix. Mix 0
// bypasses entirely.
type reverb struct {
	streamer beep.Streamer
	mix      float64
	combs    []*combFilter
	allpass  *allpassFilter
}

// newReverb wraps a streamer with reverberation, initially dry
func newReverb(s beep.Streamer, rate beep.SampleRate) *reverb {
	r := &reverb{streamer: s}
	for _, d := range combDelays {
		r.combs = append(r.combs, newCombFilter(rate.N(d), constants.ReverbFeedback))
	}
	r.allpass = newAllpassFilter(rate.N(allpassDelay), constants.ReverbAllpassGain)
	return r
}

// SetMix updates the wet mix 0-1.
// Caller must hold the speaker lock while the chain is playing.
func (r *reverb) SetMix(mix float64) {
	if mix < 0 {
		mix = 0
	}
	if mix > 1 {
		mix = 1
	}
	r.mix = mix
}

func (r *reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)
	if r.mix == 0 {
		return n, ok
	}

	for i := 0; i < n; i++ {
		dryL, dryR := samples[i][0], samples[i][1]

		var wetL, wetR float64
		for _, c := range r.combs {
			l, rr := c.process(dryL, dryR)
			wetL += l
			wetR += rr
		}
		wetL /= float64(len(r.combs))
		wetR /= float64(len(r.combs))
		wetL, wetR = r.allpass.process(wetL, wetR)

		samples[i][0] = dryL*(1-r.mix) + wetL*r.mix
		samples[i][1] = dryR*(1-r.mix) + wetR*r.mix
	}
	return n, ok
}

func (r *reverb) Err() error { return r.streamer.Err() }

// combFilter is a stereo feedback comb
type combFilter struct {
	buf      [][2]float64
	pos      int
	feedback float64
}

func newCombFilter(delay int, feedback float64) *combFilter {
	if delay < 1 {
		delay = 1
	}
	return &combFilter{buf: make([][2]float64, delay), feedback: feedback}
}

func (c *combFilter) process(l, r float64) (float64, float64) {
	outL := c.buf[c.pos][0]
	outR := c.buf[c.pos][1]
	c.buf[c.pos][0] = l + outL*c.feedback
	c.buf[c.pos][1] = r + outR*c.feedback
	c.pos = (c.pos + 1) % len(c.buf)
	return outL, outR
}

// allpassFilter is a stereo Schroeder allpass diffusor
type allpassFilter struct {
	buf  [][2]float64
	pos  int
	gain float64
}

func newAllpassFilter(delay int, gain float64) *allpassFilter {
	if delay < 1 {
		delay = 1
	}
	return &allpassFilter{buf: make([][2]float64, delay), gain: gain}
}

func (a *allpassFilter) process(l, r float64) (float64, float64) {
	bufL := a.buf[a.pos][0]
	bufR := a.buf[a.pos][1]
	outL := -l*a.gain + bufL
	outR := -r*a.gain + bufR
	a.buf[a.pos][0] = l + bufL*a.gain
	a.buf[a.pos][1] = r + bufR*a.gain
	a.pos = (a.pos + 1) % len(a.buf)
	return outL, outR
}
