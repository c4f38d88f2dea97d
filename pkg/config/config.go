// Package config loads the game configuration from YAML
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leterax/go-starship/pkg/flight"
)

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Flight    flight.Tuning   `yaml:"flight"`
	Starfield StarfieldConfig `yaml:"starfield"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type StarfieldConfig struct {
	Count     int     `yaml:"count"`
	Radius    float32 `yaml:"radius"`
	Seed      int64   `yaml:"seed"`
	PointSize float32 `yaml:"point_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Go-Starship",
			VSync:  true,
		},
		Flight: flight.DefaultTuning(),
		Starfield: StarfieldConfig{
			Count:     20000,
			Radius:    500,
			Seed:      42,
			PointSize: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Starfield.Count < 0 {
		errs = append(errs, fmt.Errorf("starfield count %d must not be negative", c.Starfield.Count))
	}
	if c.Starfield.Radius <= 0 {
		errs = append(errs, fmt.Errorf("starfield radius %v must be positive", c.Starfield.Radius))
	}
	if err := c.Flight.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
