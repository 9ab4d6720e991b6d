package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/tonedeck/tonedeck/constants"
)

// compressor is a feed-forward compressor with a brick-wall ceiling.
// Amount 0 bypasses; 1 is full squash. The envelope follower uses
// instant-ish attack and slow release so transients duck quickly and
// gain recovers smoothly.
type compressor struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	amount   float64
	attack   float64 // per-sample coefficient
	release  float64
	envelope float64
}

// newCompressor wraps a streamer with dynamics control, initially bypassed
func newCompressor(s beep.Streamer, rate beep.SampleRate) *compressor {
	c := &compressor{streamer: s, rate: rate}
	c.attack = coeff(constants.CompressorAttack.Seconds(), rate)
	c.release = coeff(constants.CompressorRelease.Seconds(), rate)
	return c
}

// coeff converts a time constant in seconds to a one-pole coefficient
func coeff(seconds float64, rate beep.SampleRate) float64 {
	return 1 - math.Exp(-1/(seconds*float64(rate)))
}

// SetAmount updates compression amount 0-1.
// Caller must hold the speaker lock while the chain is playing.
func (c *compressor) SetAmount(amount float64) {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	c.amount = amount
}

func (c *compressor) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.streamer.Stream(samples)
	if c.amount == 0 {
		return n, ok
	}

	// Threshold drops from 1.0 toward 0.25 as amount rises
	threshold := 1.0 - 0.75*c.amount

	for i := 0; i < n; i++ {
		peak := math.Max(math.Abs(samples[i][0]), math.Abs(samples[i][1]))

		if peak > c.envelope {
			c.envelope += c.attack * (peak - c.envelope)
		} else {
			c.envelope += c.release * (peak - c.envelope)
		}

		gain := 1.0
		if c.envelope > threshold {
			gain = threshold / c.envelope
		}

		l := samples[i][0] * gain
		r := samples[i][1] * gain

		// Brick-wall ceiling catches envelope lag on sharp transients
		samples[i][0] = clip(l, constants.LimiterCeiling)
		samples[i][1] = clip(r, constants.LimiterCeiling)
	}
	return n, ok
}

func clip(v, ceiling float64) float64 {
	if v > ceiling {
		return ceiling
	}
	if v < -ceiling {
		return -ceiling
	}
	return v
}

func (c *compressor) Err() error { return c.streamer.Err() }
