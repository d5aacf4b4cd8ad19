// SPDX-License-Identifier: EPL-2.0

package playrec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/playrec/audio"
	"github.com/ik5/playrec/device"
	"github.com/ik5/playrec/discover"
	"github.com/ik5/playrec/dsp"
	"github.com/ik5/playrec/waveplot"
)

// Options control a Recorder. Use DefaultOptions as the starting point.
type Options struct {
	// Normalise scales playback so its peak is dsp.TargetPeak.
	Normalise bool
	// RemoveLatency drops the silence the device adds before the
	// recording starts.
	RemoveLatency bool
	// ShowPlots renders the played and recorded signals after each file.
	ShowPlots bool
	// PlotDir receives the plot images. Empty puts them next to the
	// recording.
	PlotDir string
	// OutputRoot is the top of the output tree. Plots under PlotDir
	// mirror each recording's path relative to it.
	OutputRoot string
	// Viewer is run on each plot and waited for. Empty only logs the path.
	Viewer string
	Plot   waveplot.Options

	// SettleDelay is waited before every file.
	SettleDelay time.Duration
	// Padding is the silence appended to playback.
	Padding time.Duration
	// PlaybackRate resamples inputs when positive. 0 keeps the file rate.
	PlaybackRate int

	// ContinueOnError keeps the batch going after a failed file. The
	// failures are returned together once all files were tried.
	ContinueOnError bool

	// Registry picks decoders by file extension. Nil uses NewRegistry.
	Registry *audio.Registry
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions normalise, remove latency, pad half a second and wait half
// a second between files.
func DefaultOptions() Options {
	return Options{
		Normalise:     true,
		RemoveLatency: true,
		SettleDelay:   500 * time.Millisecond,
		Padding:       500 * time.Millisecond,
		Plot:          waveplot.DefaultOptions(),
	}
}

// Result is the outcome of one recording session.
type Result struct {
	Pair discover.Pair
	// Original is what was played, before padding.
	Original *audio.Buffer
	// Recorded is what was written.
	Recorded *audio.Buffer
	// Padded is the number of silent samples appended to playback.
	Padded int
	// Trimmed is the number of leading samples dropped as latency.
	Trimmed int
}

// Recorder runs recording sessions on one device.
type Recorder struct {
	dev  device.Duplex
	opts Options
	reg  *audio.Registry
	log  *slog.Logger
}

// New returns a Recorder playing and recording on dev.
func New(dev device.Duplex, opts Options) *Recorder {
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Recorder{dev: dev, opts: opts, reg: reg, log: logger}
}

// PlayAndRecord plays the file at in, records the device input meanwhile
// and writes the recording to out.
func (r *Recorder) PlayAndRecord(ctx context.Context, in, out string) (*Result, error) {
	log := r.log.With("input", in, "output", out)

	buf, err := Load(r.reg, in, r.opts.PlaybackRate)
	if err != nil {
		return nil, err
	}

	samples := buf.Samples
	if r.opts.Normalise {
		samples, err = dsp.Normalize(samples, dsp.TargetPeak)
		if errors.Is(err, dsp.ErrSilent) {
			log.Warn("input is silent, playing it unscaled")
		} else if err != nil {
			return nil, fmt.Errorf("normalising %s: %w", in, err)
		}
	}

	original := &audio.Buffer{Samples: samples, SampleRate: buf.SampleRate, BitDepth: buf.BitDepth}
	playback := dsp.Pad(samples, buf.SampleRate, r.opts.Padding)

	log.Debug("playing",
		"samples", len(playback), "sample_rate", buf.SampleRate,
		"duration", (&audio.Buffer{Samples: playback, SampleRate: buf.SampleRate}).Duration())

	captured, err := r.dev.PlayRecord(ctx, playback, buf.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("play/record %s: %w", in, err)
	}
	if len(captured) != len(playback) {
		return nil, fmt.Errorf("%w: played %d, recorded %d", device.ErrLengthMismatch, len(playback), len(captured))
	}

	res := &Result{
		Pair:     discover.Pair{Input: in, Output: out},
		Original: original,
		Padded:   len(playback) - len(samples),
	}

	if r.opts.RemoveLatency {
		captured, res.Trimmed = dsp.TrimLatency(captured, dsp.NoiseFloor)
	}

	res.Recorded = &audio.Buffer{Samples: captured, SampleRate: buf.SampleRate, BitDepth: buf.BitDepth}

	if err := WriteRecording(out, res.Recorded); err != nil {
		return nil, err
	}

	log.Info("recorded", "samples", res.Recorded.Len(), "latency_samples", res.Trimmed)

	if r.opts.ShowPlots {
		if err := r.plot(ctx, res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// Run records every pair in order, waiting SettleDelay before each one.
// The first failure stops the batch unless ContinueOnError is set. The
// results of the sessions that succeeded are always returned.
func (r *Recorder) Run(ctx context.Context, pairs []discover.Pair) ([]*Result, error) {
	results := make([]*Result, 0, len(pairs))
	var errs []error

	for i, p := range pairs {
		if err := settle(ctx, r.opts.SettleDelay); err != nil {
			return results, errors.Join(append(errs, err)...)
		}

		r.log.Debug("starting session", "index", i+1, "total", len(pairs), "input", p.Input)

		res, err := r.PlayAndRecord(ctx, p.Input, p.Output)
		if err != nil {
			if ctx.Err() != nil || !r.opts.ContinueOnError {
				return results, errors.Join(append(errs, err)...)
			}

			r.log.Error("session failed", "input", p.Input, "error", err)
			errs = append(errs, err)
			continue
		}

		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// PlotPaths returns where the original and recorded plots for the
// recording at out are written. With a plotDir, out's path relative to
// outputRoot is mirrored below plotDir; recordings outside outputRoot
// mirror their absolute path instead.
func PlotPaths(out, outputRoot, plotDir string) (original, recorded string) {
	base := out
	if plotDir != "" {
		base = plotBase(out, outputRoot, plotDir)
	}

	return base + ".original.png", base + ".recorded.png"
}

func plotBase(out, outputRoot, plotDir string) string {
	if outputRoot != "" {
		if p, err := discover.OutputPath(outputRoot, plotDir, out); err == nil {
			return p
		}
	}

	abs, err := filepath.Abs(out)
	if err != nil {
		abs = filepath.Clean(out)
	}
	abs = strings.TrimPrefix(abs, filepath.VolumeName(abs))

	return filepath.Join(plotDir, strings.TrimLeft(abs, string(filepath.Separator)))
}

func (r *Recorder) plot(ctx context.Context, res *Result) error {
	origPath, recPath := PlotPaths(res.Pair.Output, r.opts.OutputRoot, r.opts.PlotDir)

	plots := []struct {
		buf   *audio.Buffer
		title string
		path  string
	}{
		{buf: res.Original, title: "Original", path: origPath},
		{buf: res.Recorded, title: "Recorded", path: recPath},
	}

	for _, p := range plots {
		if err := waveplot.Render(p.buf, p.title, p.path, r.opts.Plot); err != nil {
			return fmt.Errorf("plotting %s: %w", p.title, err)
		}

		if r.opts.Viewer == "" {
			r.log.Info("plot written", "title", p.title, "path", p.path)
			continue
		}

		if err := waveplot.Show(ctx, r.opts.Viewer, p.path); err != nil {
			return err
		}
	}

	return nil
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
