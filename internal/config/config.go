// SPDX-License-Identifier: Unlicense OR MIT

// Package config reads the settings of the rectangles command from the
// environment and an optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"loverde.org/rectangles/internal/logging"
)

// Environment variables read by FromEnv.
const (
	EnvColor        = "RECTANGLES_COLOR"
	EnvDiagramScale = "RECTANGLES_DIAGRAM_SCALE"
	EnvWorkers      = "RECTANGLES_WORKERS"

	// DefaultEnvFile is loaded when present; it may be missing.
	DefaultEnvFile = ".env"
)

// Color selects when output is styled.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// ParseColor accepts auto, always and never in any case.
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	}
	return "", fmt.Errorf("config: color must be auto, always or never, got %q", s)
}

// Config holds the settings of the rectangles command.
type Config struct {
	Color Color
	// DiagramScale is the number of pixels per unit in rendered diagrams.
	DiagramScale int
	// Workers bounds the number of scenario cases evaluated at once.
	Workers int
	Logging logging.Config
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Color:        ColorAuto,
		DiagramScale: 20,
		Workers:      4,
		Logging:      logging.DefaultConfig(),
	}
}

// Load reads the dotenv file at path and then the environment. An empty
// path means DefaultEnvFile, which is skipped if it does not exist.
// Variables already set in the environment take precedence over the file.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv overlays the RECTANGLES_* variables on Default.
func FromEnv() (Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvColor); ok {
		c, err := ParseColor(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Color = c
	}
	var err error
	if cfg.DiagramScale, err = positive(EnvDiagramScale, cfg.DiagramScale); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = positive(EnvWorkers, cfg.Workers); err != nil {
		return Config{}, err
	}
	cfg.Logging, err = cfg.Logging.WithEnv().Normalize()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func positive(key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
