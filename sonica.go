// Package sonica turns an audio track into per video frame features for
// audio reactive rendering.
package sonica

import (
	"context"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/processor"
)

// Analyze runs the analysis passes over samples.
func Analyze(ctx context.Context, cfg *Config, samples input.Samples) (*processor.Result, error) {
	proc, err := processor.New(processor.Config{
		FrameRate:       cfg.FrameRate,
		SmoothingFactor: cfg.SmoothingFactor,
		Workers:         cfg.Workers,
		Progress:        cfg.Progress,
		Logger:          cfg.Logger,
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create processor")
	}

	return proc.Process(ctx, samples)
}

// AnalyzeFile decodes cfg.Input with the registered decoders and analyzes it.
// The decoded samples are returned alongside the result.
func AnalyzeFile(ctx context.Context, cfg *Config) (*processor.Result, input.Samples, error) {
	samples, err := input.DecodeFile(cfg.Input)
	if err != nil {
		return nil, input.Samples{}, err
	}

	if cfg.Logger != nil {
		cfg.Logger.Printf("decoded %s: %d samples at %d Hz (%.2fs)",
			cfg.Input, samples.Len(), samples.SampleRate, samples.Duration())
	}

	res, err := Analyze(ctx, cfg, samples)
	if err != nil {
		return nil, samples, err
	}

	return res, samples, nil
}
