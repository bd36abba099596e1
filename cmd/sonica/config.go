package main

import (
	"github.com/noriah/sonica"
)

// config holds the command line on top of the library config
type config struct {
	sonica.Config

	// Output is the path of the frame stream file, none when empty
	output string
	// BinCount is the number of spectrum columns in raw mode
	binCount int
	// Raw prints frames as numbers on stdout
	raw bool
	// Preview plays the frames back in the terminal
	preview bool
	// Monstercat is the preview bar falloff factor, off at 1 or less
	monstercat float64
	// Quiet drops the summary and progress bar
	quiet bool
	// Verbose logs each analysis pass
	verbose bool
}

// newZeroConfig returns a zero config
// it is the "default"
func newZeroConfig() config {
	return config{
		Config:   sonica.NewZeroConfig(),
		binCount: 32,
	}
}

// Sanitize cleans things up
func (cfg *config) Sanitize() error {
	if cfg.binCount < 0 {
		cfg.binCount = 0
	}

	return cfg.Config.Sanitize()
}
