package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment overrides, applied after the file
const (
	EnvSeed        = "ECHOJI_SEED"
	EnvFPS         = "ECHOJI_FPS"
	EnvCap         = "ECHOJI_CAP"
	EnvProbability = "ECHOJI_ALIGN_PROBABILITY"
	EnvPeriod      = "ECHOJI_ALIGN_PERIOD"
	EnvAudio       = "ECHOJI_AUDIO_ENABLED"
	EnvVolume      = "ECHOJI_VOLUME" // 0-100
	EnvLogLevel    = "ECHOJI_LOG_LEVEL"
	EnvLogFormat   = "ECHOJI_LOG_FORMAT"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from the environment; malformed values are errors
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError(EnvSeed, v, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvFPS); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvFPS, v, err)
		}
		c.Render.FPS = n
	}
	if v, ok := lookup(EnvCap); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvCap, v, err)
		}
		c.Field.Cap = n
	}
	if v, ok := lookup(EnvProbability); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvProbability, v, err)
		}
		c.Field.Alignment.Probability = p
	}
	if v, ok := lookup(EnvPeriod); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvPeriod, v, err)
		}
		c.Field.Alignment.Period = Duration(d)
	}
	if v, ok := lookup(EnvAudio); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvAudio, v, err)
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup(EnvVolume); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvVolume, v, err)
		}
		c.Audio.Volume = min(1, max(0, float64(n)/100))
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	return nil
}

func envError(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
}
