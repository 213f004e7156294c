package audio

// Config controls the release chime
type Config struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0-1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DefaultConfig returns the chime defaults
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     0.4,
		SampleRate: 44100,
	}
}

// clamped returns the volume within [0,1]
func (c Config) clamped() float64 {
	return min(1, max(0, c.Volume))
}
