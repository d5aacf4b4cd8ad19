// SPDX-License-Identifier: EPL-2.0

// Package portaudio implements device.Duplex on the system's default
// PortAudio input and output devices.
package portaudio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"github.com/ik5/playrec/device"
)

// ErrClosed is returned by PlayRecord after Close.
var ErrClosed = errors.New("portaudio device closed")

// Options tune the duplex stream.
type Options struct {
	// FramesPerBuffer is the callback size; 0 lets the host API choose.
	FramesPerBuffer int
	Logger          *slog.Logger
}

// Device owns the PortAudio library for its lifetime. Sessions are
// serialized: only one stream is open at a time.
type Device struct {
	opts   Options
	log    *slog.Logger
	mu     sync.Mutex
	closed bool
}

// Open initializes PortAudio. Close must be called to release it.
func Open(opts Options) (*Device, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Device{opts: opts, log: logger.With("component", "portaudio")}

	in, inErr := pa.DefaultInputDevice()
	out, outErr := pa.DefaultOutputDevice()
	if inErr == nil && outErr == nil {
		d.log.Debug("default devices",
			"input", in.Name, "output", out.Name,
			"input_latency", in.DefaultLowInputLatency,
			"output_latency", out.DefaultLowOutputLatency)
	}

	return d, nil
}

// Close terminates PortAudio.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if err := pa.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate portaudio: %w", err)
	}

	return nil
}

// PlayRecord plays playback on the default output while recording one
// channel from the default input. It blocks until the last sample has been
// handed to the driver and the stream has drained. Cancelling ctx aborts
// the stream.
func (d *Device) PlayRecord(ctx context.Context, playback []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, device.ErrInvalidSampleRate
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}

	recorded := make([]float64, len(playback))
	if len(playback) == 0 {
		return recorded, nil
	}

	var (
		pos  int
		once sync.Once
		done = make(chan struct{})
	)

	// Runs on the audio thread. pos and recorded are only read by the
	// caller after done is closed.
	callback := func(in, out []float32) {
		for i := range out {
			if pos >= len(playback) {
				out[i] = 0
				continue
			}

			out[i] = float32(playback[pos])
			if i < len(in) {
				recorded[pos] = float64(in[i])
			}
			pos++
		}

		if pos >= len(playback) {
			once.Do(func() { close(done) })
		}
	}

	stream, err := pa.OpenDefaultStream(1, 1, float64(sampleRate), d.opts.FramesPerBuffer, callback)
	if err != nil {
		return nil, fmt.Errorf("failed to open duplex stream at %d Hz: %w", sampleRate, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("failed to start duplex stream: %w", err)
	}

	d.log.Debug("duplex stream started", "samples", len(playback), "sample_rate", sampleRate)

	select {
	case <-done:
	case <-ctx.Done():
		if err := stream.Abort(); err != nil {
			d.log.Warn("aborting duplex stream", "error", err)
		}
		return nil, ctx.Err()
	}

	if err := stream.Stop(); err != nil {
		return nil, fmt.Errorf("failed to stop duplex stream: %w", err)
	}

	return recorded, nil
}

var _ device.Duplex = (*Device)(nil)
