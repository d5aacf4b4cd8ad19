// SPDX-License-Identifier: EPL-2.0

// Package config holds the runtime settings of the playrec command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all runtime configuration. Load fills it from environment
// variables; the command line may override any field afterwards.
type Config struct {
	InputDir  string
	OutputDir string

	Normalise     bool
	RemoveLatency bool
	ShowPlots     bool
	PlotDir       string // empty: next to each recording
	Viewer        string // command used to display plots

	SettleDelay     time.Duration // wait before each file
	Padding         time.Duration // silence appended to playback
	PlaybackRate    int           // 0 plays at the file rate
	FramesPerBuffer int           // 0 lets the driver choose
	Extensions      []string
	KeepGoing       bool

	// Loopback >= 0 replaces the sound card with a loopback of that many
	// samples of latency.
	Loopback int

	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		InputDir:  envStr("PLAYREC_INPUT_DIR", "input_db_small"),
		OutputDir: envStr("PLAYREC_OUTPUT_DIR", "output_db_small"),

		Normalise:     envBool("PLAYREC_NORMALISE", true),
		RemoveLatency: envBool("PLAYREC_RM_LATENCY", true),
		ShowPlots:     envBool("PLAYREC_PLOTS", false),
		PlotDir:       envStr("PLAYREC_PLOT_DIR", ""),
		Viewer:        envStr("PLAYREC_VIEWER", ""),

		SettleDelay:     envDuration("PLAYREC_SETTLE", 500*time.Millisecond),
		Padding:         envDuration("PLAYREC_PADDING", 500*time.Millisecond),
		PlaybackRate:    envInt("PLAYREC_RATE", 0),
		FramesPerBuffer: envInt("PLAYREC_FRAMES", 0),
		Extensions:      envList("PLAYREC_EXT", []string{".wav", ".WAV"}),
		KeepGoing:       envBool("PLAYREC_KEEP_GOING", false),

		Loopback: envInt("PLAYREC_LOOPBACK", -1),

		LogLevel: envStr("PLAYREC_LOG_LEVEL", "info"),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.InputDir) == "":
		return fmt.Errorf("%w: input directory is empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputDir) == "":
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	case c.SettleDelay < 0:
		return fmt.Errorf("%w: negative settle delay %s", ErrInvalidConfig, c.SettleDelay)
	case c.Padding < 0:
		return fmt.Errorf("%w: negative padding %s", ErrInvalidConfig, c.Padding)
	case c.PlaybackRate < 0:
		return fmt.Errorf("%w: negative playback rate %d", ErrInvalidConfig, c.PlaybackRate)
	case c.FramesPerBuffer < 0:
		return fmt.Errorf("%w: negative frames per buffer %d", ErrInvalidConfig, c.FramesPerBuffer)
	case len(c.Extensions) == 0:
		return fmt.Errorf("%w: no file extensions", ErrInvalidConfig)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	return lvl, nil
}

// ParseList splits a comma separated list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		if list := ParseList(v); len(list) > 0 {
			return list
		}
	}
	return fallback
}
