package dsp

import "math"

// Frequency range covered by bars
const (
	BarLowCut  = 60.0
	BarHighCut = 16000.0
)

// BinMethod folds the spectrum bins of one bar into a single value.
type BinMethod func(int, float64, float64) float64

// AnalyzerConfig configures an Analyzer.
type AnalyzerConfig struct {
	SampleRate float64   // audio sample rate
	BinCount   int       // number of spectrum bins, FFTSize/2
	BinMethod  BinMethod // method used for calculating bar value
}

// Analyzer groups a linear spectrum into bars spaced evenly on a log
// frequency scale.
type Analyzer struct {
	cfg      AnalyzerConfig
	bars     []bar
	barCount int
}

// bar is a half open span of spectrum bins
type bar struct {
	floor int
	ceil  int
}

// Average all the samples together.
func AverageSamples() BinMethod {
	return func(count int, current, new float64) float64 {
		return current + (new / float64(count))
	}
}

// Sum all the samples together.
func SumSamples() BinMethod {
	return func(_ int, current, new float64) float64 {
		return current + new
	}
}

// Return the maximum value of all the samples.
func MaxSampleValue() BinMethod {
	return func(_ int, current, new float64) float64 {
		if current < new {
			return new
		}
		return current
	}
}

// NewAnalyzer returns an Analyzer with no bars. Call Recalculate to set them
// up. A nil BinMethod defaults to MaxSampleValue.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg.BinMethod == nil {
		cfg.BinMethod = MaxSampleValue()
	}

	return &Analyzer{
		cfg:  cfg,
		bars: make([]bar, cfg.BinCount+1),
	}
}

// BarCount returns the number of bars we produce
func (az *Analyzer) BarCount() int {
	return az.barCount
}

// Recalculate rebuilds our bars for count bars and returns how many we can
// actually produce. There are never more bars than spectrum bins.
func (az *Analyzer) Recalculate(count int) int {
	switch {
	case count < 0:
		count = 0
	case count > az.cfg.BinCount:
		count = az.cfg.BinCount
	}

	if count == az.barCount {
		return count
	}

	az.barCount = count
	if count > 0 {
		az.distribute(count)
	}

	return count
}

// distribute spreads the bar edges evenly between BarLowCut and BarHighCut on
// a log scale. Every bar gets at least one bin.
func (az *Analyzer) distribute(count int) {
	lo := BarLowCut
	hi := math.Min(az.cfg.SampleRate/2, BarHighCut)

	loLog := math.Log10(lo)
	hiLog := math.Log10(hi)

	cF := (hiLog - loLog) / float64(count)

	for idx := range az.bars[:count+1] {
		frequency := math.Pow(10.0, (float64(idx)*cF)+loLog)
		az.bars[idx].floor = az.freqToIdx(frequency)

		if idx > 0 {
			if az.bars[idx-1].floor >= az.bars[idx].floor {
				az.bars[idx].floor = az.bars[idx-1].floor + 1
			}

			az.bars[idx-1].ceil = az.bars[idx].floor
		}
	}
}

func (az *Analyzer) freqToIdx(freq float64) int {
	if az.cfg.SampleRate <= 0 {
		return 0
	}

	return freqToIdx(freq, az.cfg.SampleRate/FFTSize)
}

// Process writes BarCount bars computed from bins into dst and returns it.
func (az *Analyzer) Process(dst, bins []float64) []float64 {
	if cap(dst) < az.barCount {
		dst = make([]float64, az.barCount)
	}
	dst = dst[:az.barCount]

	for idx, b := range az.bars[:az.barCount] {
		lo := min(b.floor, len(bins))
		hi := min(b.ceil, len(bins))

		mag := 0.0
		for _, v := range bins[lo:hi] {
			mag = az.cfg.BinMethod(hi-lo, mag, v)
		}

		dst[idx] = mag
	}

	return dst
}
