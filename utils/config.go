package utils

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	DisplayModeGlyph  = "glyph"
	DisplayModeDigits = "digits"
)

// Config holds the configuration for the simulation and its display
type Config struct {
	Rows            int    `json:"rows"`
	Cols            int    `json:"cols"`
	FrameIntervalMs int    `json:"frame_interval_ms"`
	DisplayMode     string `json:"display_mode"`
	Refresh         bool   `json:"refresh"`
	FillColor       string `json:"fill_color"`
	UseMemoryPool   bool   `json:"use_memory_pool"`
	Workers         int    `json:"workers"`
	MaxGenerations  int    `json:"max_generations"`
	Seed            int64  `json:"seed"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:            11,
		Cols:            20,
		FrameIntervalMs: 500,
		DisplayMode:     DisplayModeGlyph,
		Refresh:         true,
		FillColor:       "black",
		UseMemoryPool:   false,
		Workers:         1, // sequential step, 0 uses one band per CPU
		MaxGenerations:  0, // run until interrupted
		Seed:            0, // process-wide random source
	}
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// IsNotExist reports whether a LoadConfig error only means the file is missing
func IsNotExist(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}

// Validate checks that the configuration describes a runnable simulation
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("grid size must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.FrameIntervalMs < 0 {
		return errors.Errorf("frame_interval_ms must not be negative, got %d", c.FrameIntervalMs)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("max_generations must not be negative, got %d", c.MaxGenerations)
	}
	switch c.DisplayMode {
	case DisplayModeGlyph, DisplayModeDigits:
	default:
		return errors.Errorf("unknown display_mode %q", c.DisplayMode)
	}
	if _, err := c.Color(); err != nil {
		return err
	}
	return nil
}

// FrameInterval returns the pause between two frames
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Color resolves FillColor, accepting tcell color names and #rrggbb values.
// The terminal default color is refused: a fully live cell is drawn as a
// space on the fill background and would be indistinguishable from a dead one.
func (c Config) Color() (tcell.Color, error) {
	name := strings.ToLower(strings.TrimSpace(c.FillColor))
	color := tcell.GetColor(name)
	if !color.Valid() {
		return tcell.ColorDefault, errors.Errorf("fill_color %q is not a solid color", c.FillColor)
	}
	return color, nil
}
