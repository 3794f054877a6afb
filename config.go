package canopy

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("canopy: invalid config")

// Config holds the tunables of a Context. Zero fields loaded from TOML keep
// their DefaultConfig values.
type Config struct {
	// PoolBatch is how many entities a pool refill allocates at once.
	PoolBatch int `toml:"pool_batch"`
	// CreateQueueCap and DestroyQueueCap are the expected per-frame upper
	// bounds of the creation and destruction queues. Exceeding them is
	// logged as a configuration error.
	CreateQueueCap  int `toml:"create_queue_cap"`
	DestroyQueueCap int `toml:"destroy_queue_cap"`

	// ViewportWidth and ViewportHeight are the screen size in pixels used
	// for clip-space conversion and culling.
	ViewportWidth  int `toml:"viewport_width"`
	ViewportHeight int `toml:"viewport_height"`

	// Debug enables tree-shape warnings and per-frame timing logs.
	Debug bool `toml:"debug"`

	// ScrollForward is the fraction of an input field's width kept behind
	// the caret when it scrolls past the right edge. ScrollBackward is the
	// fraction kept behind the caret when it scrolls past the left edge.
	ScrollForward  float64 `toml:"scroll_forward"`
	ScrollBackward float64 `toml:"scroll_backward"`

	// WhitespaceAdvance is the advance of a whitespace character as a
	// fraction of the font size.
	WhitespaceAdvance float64 `toml:"whitespace_advance"`

	// FontPath and FontSize are used by text widgets that do not set their
	// own font.
	FontPath string  `toml:"font_path"`
	FontSize float64 `toml:"font_size"`
}

// DefaultConfig returns the configuration NewContext uses when none is given.
func DefaultConfig() Config {
	return Config{
		PoolBatch:         256,
		CreateQueueCap:    4096,
		DestroyQueueCap:   4096,
		ViewportWidth:     1280,
		ViewportHeight:    720,
		ScrollForward:     0.75,
		ScrollBackward:    0.25,
		WhitespaceAdvance: 0.15,
		FontSize:          16,
	}
}

// LoadConfig parses TOML data on top of DefaultConfig and validates the
// result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("canopy: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.PoolBatch <= 0:
		return fmt.Errorf("%w: pool_batch must be positive, got %d", ErrInvalidConfig, c.PoolBatch)
	case c.CreateQueueCap <= 0 || c.DestroyQueueCap <= 0:
		return fmt.Errorf("%w: queue capacities must be positive", ErrInvalidConfig)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.ViewportWidth, c.ViewportHeight)
	case c.ScrollForward < 0 || c.ScrollForward > 1:
		return fmt.Errorf("%w: scroll_forward %v not in [0,1]", ErrInvalidConfig, c.ScrollForward)
	case c.ScrollBackward < 0 || c.ScrollBackward > 1:
		return fmt.Errorf("%w: scroll_backward %v not in [0,1]", ErrInvalidConfig, c.ScrollBackward)
	case c.WhitespaceAdvance < 0:
		return fmt.Errorf("%w: whitespace_advance %v", ErrInvalidConfig, c.WhitespaceAdvance)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font_size %v", ErrInvalidConfig, c.FontSize)
	}
	return nil
}
