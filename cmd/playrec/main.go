// SPDX-License-Identifier: EPL-2.0

// Command playrec plays every WAV file under an input directory through the
// sound card while recording its input, and stores the recordings under an
// output directory with the same layout.
//
// Usage:
//
//	playrec [options]
//	playrec -in input_db_small -out output_db_small -plots -viewer feh
//	playrec -loopback 64 -keep-going            # no sound card needed
//
// Every option can also be set through a PLAYREC_* environment variable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/ik5/playrec"
	"github.com/ik5/playrec/device"
	"github.com/ik5/playrec/device/portaudio"
	"github.com/ik5/playrec/discover"
	"github.com/ik5/playrec/internal/config"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		red.Fprintln(os.Stderr, "playrec:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	pairs, err := discover.Pairs(cfg.InputDir, cfg.OutputDir, cfg.Extensions...)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		yellow.Fprintf(stdout, "no files matching %s under %s\n", strings.Join(cfg.Extensions, ","), cfg.InputDir)
		return nil
	}

	logger.Info("found input files", "count", len(pairs), "input", cfg.InputDir, "output", cfg.OutputDir)

	dev, closeDev, err := openDevice(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDev()

	rec := playrec.New(dev, options(cfg, logger))
	results, runErr := rec.Run(ctx, pairs)

	for _, res := range results {
		green.Fprintf(stdout, "%s -> %s", res.Pair.Input, res.Pair.Output)
		fmt.Fprintf(stdout, " (%d samples @ %d Hz", res.Recorded.Len(), res.Recorded.SampleRate)
		if res.Trimmed > 0 {
			yellow.Fprintf(stdout, ", %d latency samples removed", res.Trimmed)
		}
		fmt.Fprintln(stdout, ")")
	}

	if failed := len(pairs) - len(results); failed > 0 && runErr != nil {
		red.Fprintf(stdout, "%d of %d files not recorded\n", failed, len(pairs))
	}

	return runErr
}

func parseFlags(args []string, output io.Writer) (config.Config, error) {
	cfg := config.Load()

	fs := flag.NewFlagSet("playrec", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.InputDir, "in", cfg.InputDir, "directory searched for input files")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory recordings are written to")
	fs.BoolVar(&cfg.Normalise, "normalise", cfg.Normalise, "scale playback to 0.8 of full scale")
	fs.BoolVar(&cfg.RemoveLatency, "rm-latency", cfg.RemoveLatency, "drop leading silence from recordings")
	fs.BoolVar(&cfg.ShowPlots, "plots", cfg.ShowPlots, "plot original and recorded signals")
	fs.StringVar(&cfg.PlotDir, "plot-dir", cfg.PlotDir, "directory for plots (default: next to each recording)")
	fs.StringVar(&cfg.Viewer, "viewer", cfg.Viewer, "command used to show each plot, e.g. \"feh\"")
	fs.DurationVar(&cfg.SettleDelay, "settle", cfg.SettleDelay, "wait before each file")
	fs.DurationVar(&cfg.Padding, "padding", cfg.Padding, "silence appended to playback")
	fs.IntVar(&cfg.PlaybackRate, "rate", cfg.PlaybackRate, "playback sample rate in Hz (0: file rate)")
	fs.IntVar(&cfg.FramesPerBuffer, "frames", cfg.FramesPerBuffer, "frames per audio buffer (0: driver choice)")
	ext := fs.String("ext", strings.Join(cfg.Extensions, ","), "comma separated file suffixes to play")
	fs.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing, "continue with the next file after a failure")
	fs.IntVar(&cfg.Loopback, "loopback", cfg.Loopback, "use a loopback device with this many samples of latency instead of the sound card (-1: sound card)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %q", config.ErrInvalidConfig, fs.Args())
	}

	cfg.Extensions = config.ParseList(*ext)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func options(cfg config.Config, logger *slog.Logger) playrec.Options {
	opts := playrec.DefaultOptions()
	opts.Normalise = cfg.Normalise
	opts.RemoveLatency = cfg.RemoveLatency
	opts.ShowPlots = cfg.ShowPlots
	opts.PlotDir = cfg.PlotDir
	opts.OutputRoot = cfg.OutputDir
	opts.Viewer = cfg.Viewer
	opts.SettleDelay = cfg.SettleDelay
	opts.Padding = cfg.Padding
	opts.PlaybackRate = cfg.PlaybackRate
	opts.ContinueOnError = cfg.KeepGoing
	opts.Logger = logger

	return opts
}

func openDevice(cfg config.Config, logger *slog.Logger) (device.Duplex, func(), error) {
	if cfg.Loopback >= 0 {
		logger.Info("using loopback device", "latency_samples", cfg.Loopback)
		return device.NewLoopback(cfg.Loopback), func() {}, nil
	}

	dev, err := portaudio.Open(portaudio.Options{
		FramesPerBuffer: cfg.FramesPerBuffer,
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return dev, func() {
		if err := dev.Close(); err != nil {
			logger.Warn("closing audio device", "error", err)
		}
	}, nil
}
