// Package config loads frontend configuration from TOML or YAML
// files, merges it over built-in defaults, and supports live reload
// through filesystem notifications.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/viewkit/internal/input/key"
	"github.com/dshills/viewkit/internal/render"
)

// Errors returned by configuration loading.
var (
	// ErrUnsupportedFormat indicates the config file extension is not
	// recognized.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig indicates a loaded config failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Engine configures the core process to spawn.
type Engine struct {
	// Path is the engine executable.
	Path string `toml:"path" yaml:"path"`

	// Args are extra arguments passed to the engine.
	Args []string `toml:"args" yaml:"args"`
}

// Theme configures colors and font.
type Theme struct {
	Foreground string  `toml:"foreground" yaml:"foreground"`
	Background string  `toml:"background" yaml:"background"`
	FontFamily string  `toml:"font_family" yaml:"font_family"`
	FontSize   float64 `toml:"font_size" yaml:"font_size"`
}

// Config is the full frontend configuration.
type Config struct {
	Engine Engine `toml:"engine" yaml:"engine"`

	// ScrollScaling multiplies wheel deltas before they move the
	// viewport. Must be positive.
	ScrollScaling float64 `toml:"scroll_scaling" yaml:"scroll_scaling"`

	Theme Theme `toml:"theme" yaml:"theme"`

	// Keymap maps key chord specs like "Ctrl+z" to command names.
	Keymap map[string]string `toml:"keymap" yaml:"keymap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: Engine{Path: "xi-core"},
		// One line per wheel notch.
		ScrollScaling: 0.5,
		Theme: Theme{
			Foreground: render.DefaultForeground,
			Background: render.DefaultBackground,
			FontFamily: render.DefaultFontFamily,
			FontSize:   render.DefaultFontSize,
		},
		Keymap: map[string]string{},
	}
}

// DefaultPath returns the conventional config file location: the
// first of config.toml, config.yaml, config.yml that exists under the
// user config dir, or the TOML path when none do.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, "viewkit")
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(base, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(base, "config.toml")
}

// Load reads a config file over the defaults. A missing file is not
// an error: the defaults are returned. The format follows the file
// extension: .toml, .yaml, or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.ScrollScaling <= 0 {
		return fmt.Errorf("%w: scroll_scaling must be positive, got %v",
			ErrInvalidConfig, c.ScrollScaling)
	}
	if _, err := render.ParseColor(c.Theme.Foreground); err != nil {
		return fmt.Errorf("%w: theme foreground: %v", ErrInvalidConfig, err)
	}
	if _, err := render.ParseColor(c.Theme.Background); err != nil {
		return fmt.Errorf("%w: theme background: %v", ErrInvalidConfig, err)
	}
	if c.Theme.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive, got %v",
			ErrInvalidConfig, c.Theme.FontSize)
	}
	for chord := range c.Keymap {
		if _, err := key.Parse(chord); err != nil {
			return fmt.Errorf("%w: keymap chord %q: %v", ErrInvalidConfig, chord, err)
		}
	}
	return nil
}

// RenderTheme converts the theme section to paint colors. Validate
// must have passed.
func (c Config) RenderTheme() render.Theme {
	fg, _ := render.ParseColor(c.Theme.Foreground)
	bg, _ := render.ParseColor(c.Theme.Background)
	return render.Theme{
		Foreground: fg,
		Background: bg,
		FontFamily: c.Theme.FontFamily,
		FontSize:   c.Theme.FontSize,
	}
}

// ParsedKeymap parses the keymap section into key events. Chords that
// fail to parse are skipped; Validate reports them.
func (c Config) ParsedKeymap() map[key.Event]string {
	m := make(map[key.Event]string, len(c.Keymap))
	for chord, command := range c.Keymap {
		ev, err := key.Parse(chord)
		if err != nil {
			continue
		}
		m[ev] = command
	}
	return m
}
