// Package processor runs the three analysis passes over a decoded track.
package processor

import (
	"context"
	"io"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/dsp"
	"github.com/noriah/sonica/input"
)

// Configuration errors returned by New.
var (
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
	ErrInvalidSmoothing = errors.New("smoothing factor must be in [0, 1)")
)

// Config configures a Processor.
type Config struct {
	FrameRate       int          // output frames per second
	SmoothingFactor float64      // smoothing factor in [0, 1)
	Workers         int          // frame workers, NumCPU when 0
	Progress        ProgressFunc // frame progress, may be nil
	Logger          *log.Logger  // pass logging, silent when nil
}

// Result is the output of one analysis run.
type Result struct {
	Global *dsp.GlobalAnalysis
	Frames []dsp.SmoothedFrame
}

// Processor runs the global, frame and smoothing passes over a track.
type Processor struct {
	fps      int
	workers  int
	progress ProgressFunc
	logger   *log.Logger
	smoother *dsp.Smoother
}

// New validates cfg and returns a Processor. Workers defaults to one per CPU.
func New(cfg Config) (*Processor, error) {
	if cfg.FrameRate <= 0 {
		return nil, errors.Wrapf(ErrInvalidFrameRate, "got %d", cfg.FrameRate)
	}

	if !(cfg.SmoothingFactor >= 0 && cfg.SmoothingFactor < 1) {
		return nil, errors.Wrapf(ErrInvalidSmoothing, "got %g", cfg.SmoothingFactor)
	}

	proc := &Processor{
		fps:      cfg.FrameRate,
		workers:  cfg.Workers,
		progress: cfg.Progress,
		logger:   cfg.Logger,
		smoother: dsp.NewSmoother(dsp.SmootherConfig{
			FrameRate:       cfg.FrameRate,
			SmoothingFactor: cfg.SmoothingFactor,
		}),
	}

	if proc.workers <= 0 {
		proc.workers = runtime.NumCPU()
	}

	if proc.logger == nil {
		proc.logger = log.New(io.Discard, "", 0)
	}

	return proc, nil
}

// Process analyzes samples. The global pass runs alongside frame extraction;
// smoothing starts once both are done.
func (proc *Processor) Process(ctx context.Context, samples input.Samples) (*Result, error) {
	start := time.Now()

	var global *dsp.GlobalAnalysis

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		global = dsp.AnalyzeGlobal(samples)
	}()

	ext := dsp.NewExtractor(samples, proc.fps)

	raw, err := Extract(ctx, ext.FrameCount(), proc.workers, ext.Extract, proc.progress)

	wg.Wait()

	if err != nil {
		return nil, err
	}

	proc.logger.Printf("pass 1: %d beats, %.1f bpm, peak rms %.4f",
		len(global.BeatTimes), global.TempoBPM, global.PeakRMS)
	proc.logger.Printf("pass 2: %d frames on %d workers", len(raw), proc.workers)

	frames := proc.smoother.Smooth(raw, global)

	proc.logger.Printf("pass 3: done in %s", time.Since(start).Round(time.Millisecond))

	return &Result{
		Global: global,
		Frames: frames,
	}, nil
}
