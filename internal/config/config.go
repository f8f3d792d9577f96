// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objview/pkg/encoding"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Light   LightConfig   `yaml:"light"`
	Logging LoggingConfig `yaml:"logging"`

	// Keys rebinds viewer keys, e.g. "ctrl+r": reset. Action names are
	// checked by the viewer.
	Keys map[string]string `yaml:"keys,omitempty"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds the model to show and how to show it.
type ViewerConfig struct {
	Model         string  `yaml:"model"`          // OBJ file, ~ is expanded
	CustomTexture string  `yaml:"custom_texture"` // Texture for the custom_texture mode
	FlipTextures  bool    `yaml:"flip_textures"`  // Flip decoded images vertically
	Charset       string  `yaml:"charset"`        // OBJ/MTL text encoding, empty reads raw bytes
	RenderMode    string  `yaml:"render_mode"`    // shaded, faces, lines, points, colors, custom_texture
	ScaleStep     float32 `yaml:"scale_step"`     // Shrink factor per step, in (0,1)
	MoveStep      float32 `yaml:"move_step"`      // Translation per step
}

// LightConfig holds the initial light settings.
type LightConfig struct {
	Position     [3]float32 `yaml:"position"`
	Color        [3]float32 `yaml:"color"`
	ViewPosition [3]float32 `yaml:"view_position"`
	Step         float32    `yaml:"step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1400,
			Height: 1200,
			VSync:  true,
		},
		Viewer: ViewerConfig{
			FlipTextures: true,
			RenderMode:   "shaded",
			ScaleStep:    0.9,
			MoveStep:     0.05,
		},
		Light: LightConfig{
			Position:     [3]float32{0, 0, 1},
			Color:        [3]float32{1, 1, 1},
			ViewPosition: [3]float32{0, 0, 1},
			Step:         0.01,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks ranges the viewer relies on. The render mode name is
// checked by the viewer itself.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Viewer.ScaleStep <= 0 || c.Viewer.ScaleStep >= 1:
		return fmt.Errorf("%w: scale_step %g not in (0,1)", ErrInvalidConfig, c.Viewer.ScaleStep)
	case c.Viewer.MoveStep <= 0:
		return fmt.Errorf("%w: move_step %g must be positive", ErrInvalidConfig, c.Viewer.MoveStep)
	case c.Light.Step <= 0:
		return fmt.Errorf("%w: light step %g must be positive", ErrInvalidConfig, c.Light.Step)
	}
	if _, err := encoding.Lookup(c.Viewer.Charset); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
