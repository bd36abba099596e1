package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/noriah/sonica/dsp"
)

// RawWriter prints one line of numbers per frame.
//
// Columns are time, bass, mid, high, rms, centroid, flux, beat intensity,
// beat phase and the beat flag, followed by the spectrum grouped into log
// spaced bars.
type RawWriter struct {
	w        *bufio.Writer
	analyzer *dsp.Analyzer
	bars     []float64
}

var _ Output = &RawWriter{}

// NewRawWriter returns a writer printing binCount spectrum bars for a track
// sampled at sampleRate.
func NewRawWriter(w io.Writer, binCount int, sampleRate float64) *RawWriter {
	rw := &RawWriter{
		w: bufio.NewWriter(w),
		analyzer: dsp.NewAnalyzer(dsp.AnalyzerConfig{
			SampleRate: sampleRate,
			BinCount:   dsp.FFTSize / 2,
			BinMethod:  dsp.MaxSampleValue(),
		}),
	}

	rw.analyzer.Recalculate(binCount)

	return rw
}

// Bins returns the number of spectrum bars we print.
func (rw *RawWriter) Bins() int {
	return rw.analyzer.BarCount()
}

func (rw *RawWriter) Write(idx int, frame *dsp.SmoothedFrame) error {
	beat := 0
	if frame.IsBeat {
		beat = 1
	}

	fmt.Fprintf(rw.w, "%9.4f %6.3f %6.3f %6.3f %6.3f %6.3f %6.3f %6.3f %6.3f %d",
		frame.Time, frame.Bass, frame.Mid, frame.High, frame.RMS,
		frame.SpectralCentroid, frame.SpectralFlux,
		frame.BeatIntensity, frame.BeatPhase, beat)

	rw.bars = rw.analyzer.Process(rw.bars, frame.Bins)
	for _, v := range rw.bars {
		fmt.Fprintf(rw.w, " %6.3f", v)
	}

	if err := rw.w.WriteByte('\n'); err != nil {
		return errors.Wrapf(err, "frame %d", idx)
	}

	return nil
}

func (rw *RawWriter) Flush() error {
	return errors.Wrap(rw.w.Flush(), "failed to flush raw output")
}
