package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/tonedeck/tonedeck/constants"
)

// Config holds engine construction parameters
type Config struct {
	Enabled    bool
	SampleRate int
	BufferLen  time.Duration
	Volume     float64
}

// DefaultConfig returns engine defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		SampleRate: constants.DefaultSampleRate,
		BufferLen:  constants.DefaultBufferLen,
		Volume:     1.0,
	}
}

// LoadConfig loads engine configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("TONEDECK_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if rate := os.Getenv("TONEDECK_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if buf := os.Getenv("TONEDECK_BUFFER_MS"); buf != "" {
		if val, err := strconv.Atoi(buf); err == nil && val > 0 {
			cfg.BufferLen = time.Duration(val) * time.Millisecond
		}
	}

	// Master volume 0-200 converted to 0.0-2.0
	if volume := os.Getenv("TONEDECK_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = float64(val) / 100.0
			if cfg.Volume < 0 {
				cfg.Volume = 0
			}
			if cfg.Volume > 2 {
				cfg.Volume = 2
			}
		}
	}

	return cfg
}
