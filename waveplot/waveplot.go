// SPDX-License-Identifier: EPL-2.0

// Package waveplot draws amplitude over time for a mono buffer and hands
// the image to an external viewer.
package waveplot

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ik5/playrec/audio"
)

const (
	// DefaultMaxPoints bounds the number of vertices drawn per plot.
	DefaultMaxPoints = 4000

	// YLimit is the fixed amplitude range shown, [-YLimit, YLimit].
	YLimit = 1.2
)

// ErrNoSampleRate is returned when a buffer without a sample rate is plotted.
var ErrNoSampleRate = errors.New("buffer has no sample rate")

// Options control the rendered image.
type Options struct {
	Width     vg.Length
	Height    vg.Length
	MaxPoints int
	Color     color.Color
}

// DefaultOptions renders a wide 10x4 inch image.
func DefaultOptions() Options {
	return Options{
		Width:     10 * vg.Inch,
		Height:    4 * vg.Inch,
		MaxPoints: DefaultMaxPoints,
		Color:     color.RGBA{R: 31, G: 119, B: 180, A: 255},
	}
}

// Render writes a plot of buf titled title to path. The image format
// follows the file extension (png, svg, pdf, ...). Missing parent
// directories are created.
func Render(buf *audio.Buffer, title, path string, opts Options) error {
	if buf.SampleRate <= 0 {
		return ErrNoSampleRate
	}

	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = def.MaxPoints
	}
	if opts.Color == nil {
		opts.Color = def.Color
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time [s]"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	if buf.Len() > 0 {
		line, err := plotter.NewLine(Points(buf.Samples, buf.SampleRate, opts.MaxPoints))
		if err != nil {
			return fmt.Errorf("building line for %q: %w", title, err)
		}
		line.Color = opts.Color
		line.Width = vg.Points(0.5)
		p.Add(line)
	}

	// Fixed after Add, which widens the axes to the data.
	p.X.Min = 0
	p.X.Max = math.Max(buf.Duration().Seconds(), 1/float64(buf.SampleRate))
	p.Y.Min = -YLimit
	p.Y.Max = YLimit

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}

	return nil
}

// Points converts samples to (time, amplitude) pairs with t[i] = i/rate.
// When there are more than maxPoints samples, each bucket of samples is
// reduced to its minimum and maximum so peaks stay visible. Non-finite
// samples are drawn as 0.
func Points(samples []float64, rate, maxPoints int) plotter.XYs {
	if rate <= 0 || len(samples) == 0 {
		return plotter.XYs{}
	}

	dt := 1 / float64(rate)

	if maxPoints <= 0 || len(samples) <= maxPoints {
		pts := make(plotter.XYs, len(samples))
		for i, v := range samples {
			pts[i] = plotter.XY{X: float64(i) * dt, Y: finite(v)}
		}

		return pts
	}

	buckets := max(maxPoints/2, 1)
	size := (len(samples) + buckets - 1) / buckets
	pts := make(plotter.XYs, 0, 2*buckets)

	for start := 0; start < len(samples); start += size {
		end := min(start+size, len(samples))

		lo, hi := start, start
		for i := start; i < end; i++ {
			if finite(samples[i]) < finite(samples[lo]) {
				lo = i
			}
			if finite(samples[i]) > finite(samples[hi]) {
				hi = i
			}
		}

		first, second := lo, hi
		if hi < lo {
			first, second = hi, lo
		}

		pts = append(pts, plotter.XY{X: float64(first) * dt, Y: finite(samples[first])})
		if second != first {
			pts = append(pts, plotter.XY{X: float64(second) * dt, Y: finite(samples[second])})
		}
	}

	return pts
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

// Show opens path with viewer and waits for the viewer to exit. viewer is
// a command line; path is appended as its last argument. An empty viewer
// is a no-op.
func Show(ctx context.Context, viewer, path string) error {
	fields := strings.Fields(viewer)
	if len(fields) == 0 {
		return nil
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s: %w", fields[0], err)
	}

	return nil
}
