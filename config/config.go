// Package config loads echoji settings from YAML with ECHOJI_* environment overrides
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/echoji/audio"
	"github.com/lixenwraith/echoji/field"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration written as "15s" in YAML
type Duration time.Duration

// UnmarshalYAML parses Go duration strings
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration string
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Alignment is the scheduler section
type Alignment struct {
	Period      Duration `yaml:"period"`
	Duration    Duration `yaml:"duration"`
	Probability float64  `yaml:"probability"`
	Guard       bool     `yaml:"guard"`
}

// Field is the population section
type Field struct {
	Counts     [field.LayerCount]int `yaml:"counts,flow"`
	Cap        int                   `yaml:"cap"`
	EvictDelay Duration              `yaml:"evict_delay"`
	Alignment  Alignment             `yaml:"alignment"`
}

// Log is the logging section
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Render is the display section
type Render struct {
	FPS int `yaml:"fps"`
	// BoxCells is the glyph width at scale 1, 0 sizes from the terminal
	BoxCells int  `yaml:"box_cells"`
	Status   bool `yaml:"status"`
}

// Config is the whole file
type Config struct {
	Seed   int64        `yaml:"seed"`
	Field  Field        `yaml:"field"`
	Render Render       `yaml:"render"`
	Audio  audio.Config `yaml:"audio"`
	Log    Log          `yaml:"log"`
}

// Default mirrors the stock field, store and scheduler constants
func Default() Config {
	fc := field.DefaultConfig()
	return Config{
		Field: Field{
			Counts:     fc.Counts,
			Cap:        fc.Store.Cap,
			EvictDelay: Duration(fc.Store.EvictDelay),
			Alignment: Alignment{
				Period:      Duration(fc.Scheduler.Period),
				Duration:    Duration(fc.Scheduler.Duration),
				Probability: fc.Scheduler.Probability,
				Guard:       fc.Scheduler.Guard,
			},
		},
		Render: Render{FPS: 30},
		Audio:  audio.DefaultConfig(),
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies the environment and validates
// An empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.Decode(bytes.NewReader(data)); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays YAML onto cfg, rejecting unknown keys
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Encode writes cfg as YAML
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks ranges; errors wrap ErrInvalidConfig and name the field
func (c Config) Validate() error {
	for i, n := range c.Field.Counts {
		if n < 0 {
			return fmt.Errorf("%w: field.counts[%d] = %d", ErrInvalidConfig, i, n)
		}
	}
	switch {
	case c.Field.Cap < 1:
		return fmt.Errorf("%w: field.cap = %d", ErrInvalidConfig, c.Field.Cap)
	case c.Field.EvictDelay < 0:
		return fmt.Errorf("%w: field.evict_delay = %s", ErrInvalidConfig, c.Field.EvictDelay.Std())
	case c.Field.Alignment.Period <= 0:
		return fmt.Errorf("%w: field.alignment.period = %s", ErrInvalidConfig, c.Field.Alignment.Period.Std())
	case c.Field.Alignment.Duration <= 0:
		return fmt.Errorf("%w: field.alignment.duration = %s", ErrInvalidConfig, c.Field.Alignment.Duration.Std())
	case c.Field.Alignment.Probability < 0 || c.Field.Alignment.Probability > 1:
		return fmt.Errorf("%w: field.alignment.probability = %g", ErrInvalidConfig, c.Field.Alignment.Probability)
	case c.Render.FPS < 1 || c.Render.FPS > 240:
		return fmt.Errorf("%w: render.fps = %d", ErrInvalidConfig, c.Render.FPS)
	case c.Render.BoxCells < 0:
		return fmt.Errorf("%w: render.box_cells = %d", ErrInvalidConfig, c.Render.BoxCells)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume = %g", ErrInvalidConfig, c.Audio.Volume)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sample_rate = %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	return nil
}

// FieldConfig maps the file onto field.Config
func (c Config) FieldConfig() field.Config {
	return field.Config{
		Counts: c.Field.Counts,
		Store: field.StoreConfig{
			Cap:        c.Field.Cap,
			EvictDelay: c.Field.EvictDelay.Std(),
		},
		Scheduler: field.SchedulerConfig{
			Period:      c.Field.Alignment.Period.Std(),
			Duration:    c.Field.Alignment.Duration.Std(),
			Probability: c.Field.Alignment.Probability,
			Guard:       c.Field.Alignment.Guard,
		},
		Seed: c.Seed,
	}
}
