// Package output holds sinks for smoothed frames.
package output

import "github.com/noriah/sonica/dsp"

// Output receives frames in order.
type Output interface {
	// Write takes frame number idx.
	Write(idx int, frame *dsp.SmoothedFrame) error
	// Flush pushes out anything still buffered.
	Flush() error
}

// WriteAll sends every frame to out and flushes it.
func WriteAll(out Output, frames []dsp.SmoothedFrame) error {
	for i := range frames {
		if err := out.Write(i, &frames[i]); err != nil {
			return err
		}
	}
	return out.Flush()
}
