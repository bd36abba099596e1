package sonica

import (
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/processor"
)

// MaxSmoothingFactor is the highest usable smoothing factor. At 1 the moving
// averages would hold their first value forever.
const MaxSmoothingFactor = 0.99

// ErrInvalidSize is returned for a non-positive render size.
var ErrInvalidSize = errors.New("width and height must be positive")

type Config struct {
	// The audio file to analyze
	Input string
	// The number of output frames per second
	FrameRate int
	// How much each frame leans on its neighbors, [0, MaxSmoothingFactor]
	SmoothingFactor float64
	// Render target size, handed to the renderer with every frame
	Width  int
	Height int
	// Number of frame workers, 0 for one per CPU
	Workers int

	// Called as frames finish extraction
	Progress processor.ProgressFunc
	// Where pass logging goes, silent when nil
	Logger *log.Logger
}

// NewZeroConfig returns a zero config
// it is the "default"
func NewZeroConfig() Config {
	return Config{
		FrameRate:       30,
		SmoothingFactor: 0.85,
		Width:           1920,
		Height:          1080,
		Workers:         0,
	}
}

// Sanitize cleans things up. Bad frame rates and sizes are errors, the
// smoothing factor is clamped.
func (cfg *Config) Sanitize() error {
	if cfg.FrameRate <= 0 {
		return errors.Wrapf(processor.ErrInvalidFrameRate, "got %d", cfg.FrameRate)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %dx%d", cfg.Width, cfg.Height)
	}

	switch {
	case math.IsNaN(cfg.SmoothingFactor), cfg.SmoothingFactor < 0:
		cfg.SmoothingFactor = 0
	case cfg.SmoothingFactor > MaxSmoothingFactor:
		cfg.SmoothingFactor = MaxSmoothingFactor
	}

	if cfg.Workers < 0 {
		cfg.Workers = 0
	}

	return nil
}
