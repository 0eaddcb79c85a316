// SPDX-License-Identifier: Unlicense OR MIT

// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Sink selects where records are written.
type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkNone   Sink = "none"
)

// Environment variables read by Config.WithEnv.
const (
	EnvLogLevel  = "RECTANGLES_LOG_LEVEL"
	EnvLogFormat = "RECTANGLES_LOG_FORMAT"
	EnvLogSink   = "RECTANGLES_LOG_SINK"
)

// Config holds optional overrides; nil fields take their defaults.
type Config struct {
	Level  *string
	Format *string
	Sink   *string
}

// Options identify the program in every record.
type Options struct {
	App     string
	Version string
	// Stderr replaces os.Stderr for SinkStderr.
	Stderr io.Writer
}

// DefaultConfig is quiet: only errors reach stderr.
func DefaultConfig() Config {
	level := "error"
	format := string(FormatText)
	sink := string(SinkStderr)
	return Config{Level: &level, Format: &format, Sink: &sink}
}

// Merge returns c with every non-nil field of override applied.
func (c Config) Merge(override Config) Config {
	if override.Level != nil {
		c.Level = override.Level
	}
	if override.Format != nil {
		c.Format = override.Format
	}
	if override.Sink != nil {
		c.Sink = override.Sink
	}
	return c
}

// WithEnv applies the RECTANGLES_LOG_* environment variables.
func (c Config) WithEnv() Config {
	apply := func(dst **string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = &v
		}
	}
	apply(&c.Level, EnvLogLevel)
	apply(&c.Format, EnvLogFormat)
	apply(&c.Sink, EnvLogSink)
	return c
}

// Normalize lowercases the fields and rejects unknown values.
func (c Config) Normalize() (Config, error) {
	norm := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	c.Level = norm(c.Level)
	c.Format = norm(c.Format)
	c.Sink = norm(c.Sink)
	if c.Level != nil {
		if _, err := parseLevel(*c.Level); err != nil {
			return Config{}, err
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return Config{}, fmt.Errorf("logging: unknown format %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkNone:
		default:
			return Config{}, fmt.Errorf("logging: unknown sink %q", *c.Sink)
		}
	}
	return c, nil
}

// New builds a logger from the defaults overridden by cfg.
func New(cfg Config, opts Options) (*slog.Logger, error) {
	cfg, err := DefaultConfig().Merge(cfg).Normalize()
	if err != nil {
		return nil, err
	}
	level, _ := parseLevel(*cfg.Level)
	var w io.Writer
	switch Sink(*cfg.Sink) {
	case SinkNone:
		w = io.Discard
	default:
		w = opts.Stderr
		if w == nil {
			w = os.Stderr
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch Format(*cfg.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	logger := slog.New(handler)
	if opts.App != "" {
		logger = logger.With(slog.String("app", opts.App))
	}
	if opts.Version != "" {
		logger = logger.With(slog.String("version", opts.Version))
	}
	return logger, nil
}

// Init builds a logger with New and installs it as the slog default.
func Init(cfg Config, opts Options) (*slog.Logger, error) {
	logger, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
}
