// Package config loads the pull-to-refresh demo configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xqrs/tview-pull/gesture"
)

// Config holds all demo configuration.
type Config struct {
	Gesture GestureConfig `toml:"gesture"`
	Panel   PanelConfig   `toml:"panel"`
	Keys    KeysConfig    `toml:"keys"`
	List    ListConfig    `toml:"list"`
}

// GestureConfig is the [gesture] table.
type GestureConfig struct {
	DragDistanceDP  int     `toml:"drag_distance_dp"`
	Density         float64 `toml:"density"`
	Interpolator    string  `toml:"interpolator"`
	SpringFrequency float64 `toml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping"`
}

// PanelConfig holds the indicator texts.
type PanelConfig struct {
	Hint    string `toml:"hint"`
	Loading string `toml:"loading"`
}

// KeysConfig lists the key strings bound to each action.
type KeysConfig struct {
	Refresh []string `toml:"refresh"`
	Quit    []string `toml:"quit"`
}

// ListConfig sizes the demo list.
type ListConfig struct {
	Items int `toml:"items"`
}

// Interpolator names accepted in [gesture] interpolator.
const (
	InterpolatorDecelerate = "decelerate"
	InterpolatorLinear     = "linear"
	InterpolatorSpring     = "spring"
)

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Gesture: GestureConfig{
			DragDistanceDP:  gesture.DefaultDragDistanceDP,
			Density:         0.05,
			Interpolator:    InterpolatorDecelerate,
			SpringFrequency: 6,
			SpringDamping:   0.5,
		},
		Panel: PanelConfig{
			Hint:    "Pull to refresh",
			Loading: "Loading…",
		},
		Keys: KeysConfig{
			Refresh: []string{"r", "ctrl+r"},
			Quit:    []string{"q", "ctrl+c"},
		},
		List: ListConfig{
			Items: 20,
		},
	}
}

// Load reads config from path. An empty path searches the standard
// locations and falls back to defaults if there is no file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, p := range configPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "pullrefresh-demo", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "pullrefresh-demo", "config.toml"))
	}

	return paths
}

// Validate reports all invalid values.
func (c Config) Validate() error {
	var errs []error
	if c.Gesture.DragDistanceDP <= 0 {
		errs = append(errs, fmt.Errorf("gesture.drag_distance_dp must be positive, got %d", c.Gesture.DragDistanceDP))
	}
	if c.Gesture.Density <= 0 {
		errs = append(errs, fmt.Errorf("gesture.density must be positive, got %g", c.Gesture.Density))
	}
	if _, err := c.Gesture.NewInterpolator(); err != nil {
		errs = append(errs, err)
	}
	if c.List.Items < 0 {
		errs = append(errs, fmt.Errorf("list.items must not be negative, got %d", c.List.Items))
	}
	return errors.Join(errs...)
}

// TotalDragDistance returns the trigger distance in rows.
func (g GestureConfig) TotalDragDistance() int {
	return max(gesture.DPToPixels(g.DragDistanceDP, g.Density), 1)
}

// NewInterpolator returns the configured settle curve.
func (g GestureConfig) NewInterpolator() (gesture.Interpolator, error) {
	switch strings.ToLower(g.Interpolator) {
	case "", InterpolatorDecelerate:
		return gesture.Decelerate{Factor: 1}, nil
	case InterpolatorLinear:
		return gesture.Linear, nil
	case InterpolatorSpring:
		if g.SpringFrequency <= 0 || g.SpringDamping < 0 {
			return nil, errors.New("gesture.spring_frequency must be positive and gesture.spring_damping not negative")
		}
		return gesture.NewSpring(g.SpringFrequency, g.SpringDamping), nil
	}
	return nil, fmt.Errorf("unknown gesture.interpolator %q", g.Interpolator)
}
