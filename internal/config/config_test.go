// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"PLAYREC_INPUT_DIR", "PLAYREC_OUTPUT_DIR", "PLAYREC_NORMALISE",
	"PLAYREC_RM_LATENCY", "PLAYREC_PLOTS", "PLAYREC_PLOT_DIR",
	"PLAYREC_VIEWER", "PLAYREC_SETTLE", "PLAYREC_PADDING", "PLAYREC_RATE",
	"PLAYREC_FRAMES", "PLAYREC_EXT", "PLAYREC_KEEP_GOING",
	"PLAYREC_LOOPBACK", "PLAYREC_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()

	// t.Setenv restores the previous value when the test ends.
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "input_db_small", cfg.InputDir)
	assert.Equal(t, "output_db_small", cfg.OutputDir)
	assert.True(t, cfg.Normalise)
	assert.True(t, cfg.RemoveLatency)
	assert.False(t, cfg.ShowPlots)
	assert.Empty(t, cfg.PlotDir)
	assert.Empty(t, cfg.Viewer)
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Padding)
	assert.Zero(t, cfg.PlaybackRate)
	assert.Zero(t, cfg.FramesPerBuffer)
	assert.Equal(t, []string{".wav", ".WAV"}, cfg.Extensions)
	assert.False(t, cfg.KeepGoing)
	assert.Equal(t, -1, cfg.Loopback)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PLAYREC_INPUT_DIR", "/data/in")
	t.Setenv("PLAYREC_OUTPUT_DIR", "/data/out")
	t.Setenv("PLAYREC_NORMALISE", "false")
	t.Setenv("PLAYREC_RM_LATENCY", "0")
	t.Setenv("PLAYREC_PLOTS", "true")
	t.Setenv("PLAYREC_VIEWER", "feh --scale-down")
	t.Setenv("PLAYREC_SETTLE", "2s")
	t.Setenv("PLAYREC_PADDING", "250ms")
	t.Setenv("PLAYREC_RATE", "48000")
	t.Setenv("PLAYREC_EXT", ".wav, .mp3 ,,")
	t.Setenv("PLAYREC_KEEP_GOING", "1")
	t.Setenv("PLAYREC_LOOPBACK", "64")
	t.Setenv("PLAYREC_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.False(t, cfg.Normalise)
	assert.False(t, cfg.RemoveLatency)
	assert.True(t, cfg.ShowPlots)
	assert.Equal(t, "feh --scale-down", cfg.Viewer)
	assert.Equal(t, 2*time.Second, cfg.SettleDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Padding)
	assert.Equal(t, 48000, cfg.PlaybackRate)
	assert.Equal(t, []string{".wav", ".mp3"}, cfg.Extensions)
	assert.True(t, cfg.KeepGoing)
	assert.Equal(t, 64, cfg.Loopback)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("PLAYREC_NORMALISE", "maybe")
	t.Setenv("PLAYREC_SETTLE", "soon")
	t.Setenv("PLAYREC_RATE", "fast")
	t.Setenv("PLAYREC_EXT", " , ")

	cfg := Load()

	assert.True(t, cfg.Normalise)
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay)
	assert.Zero(t, cfg.PlaybackRate)
	assert.Equal(t, []string{".wav", ".WAV"}, cfg.Extensions)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			InputDir:    "in",
			OutputDir:   "out",
			SettleDelay: time.Second,
			Padding:     time.Second,
			Extensions:  []string{".wav"},
			Loopback:    -1,
			LogLevel:    "warn",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty input dir", mutate: func(c *Config) { c.InputDir = " " }},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }},
		{name: "negative settle", mutate: func(c *Config) { c.SettleDelay = -time.Millisecond }},
		{name: "negative padding", mutate: func(c *Config) { c.Padding = -time.Second }},
		{name: "negative rate", mutate: func(c *Config) { c.PlaybackRate = -8000 }},
		{name: "negative frames", mutate: func(c *Config) { c.FramesPerBuffer = -1 }},
		{name: "no extensions", mutate: func(c *Config) { c.Extensions = nil }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".wav", ".WAV", ".mp3"}, ParseList(".wav,.WAV, .mp3"))
	assert.Empty(t, ParseList(""))
	assert.Empty(t, ParseList(" , ,"))
}
