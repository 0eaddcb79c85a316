// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"loverde.org/rectangles/internal/logging"
)

// clearEnv unsets every variable the package reads for the duration of t.
func clearEnv(t *testing.T) {
	for _, k := range []string{EnvColor, EnvDiagramScale, EnvWorkers, logging.EnvLogLevel, logging.EnvLogFormat, logging.EnvLogSink} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ColorAuto, cfg.Color)
	require.Equal(t, 20, cfg.DiagramScale)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "error", *cfg.Logging.Level)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvColor, "NEVER")
	t.Setenv(EnvDiagramScale, "8")
	t.Setenv(EnvWorkers, " 2 ")
	t.Setenv(logging.EnvLogLevel, "Debug")
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ColorNever, cfg.Color)
	require.Equal(t, 8, cfg.DiagramScale)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "debug", *cfg.Logging.Level)
}

func TestFromEnvInvalid(t *testing.T) {
	for key, val := range map[string]string{
		EnvColor:            "sometimes",
		EnvDiagramScale:     "0",
		EnvWorkers:          "many",
		logging.EnvLogLevel: "verbose",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := FromEnv()
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rect.env")
	require.NoError(t, os.WriteFile(path, []byte("RECTANGLES_WORKERS=7\nRECTANGLES_COLOR=always\n"), 0o644))
	t.Setenv(EnvColor, "never")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Workers)
	require.Equal(t, ColorNever, cfg.Color, "environment wins over the file")
}

func TestLoadMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default().Workers, cfg.Workers)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Always ")
	require.NoError(t, err)
	require.Equal(t, ColorAlways, c)
	_, err = ParseColor("")
	require.Error(t, err)
}
