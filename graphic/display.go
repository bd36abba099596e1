// Package graphic plays analyzed frames back in the terminal.
package graphic

import (
	"context"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/noriah/sonica/dsp"
	"github.com/noriah/sonica/output"
)

const (
	// BarRune is the block we use for bars
	BarRune rune = '█'
	// NumRunes number of runes for sub step bars
	NumRunes = 8

	// MeterRows is the number of rows under the spectrum for the meters
	MeterRows = 4
)

var barRunes = [NumRunes]rune{
	' ',
	'▁',
	'▂',
	'▃',
	'▄',
	'▅',
	'▆',
	'▇',
}

// Display draws frames with termbox.
type Display struct {
	env        *terminalEnv
	analyzer   *dsp.Analyzer
	bars       []float64
	monstercat float64
	frames     int
}

var _ output.Output = &Display{}

// Init sets up the terminal for a track sampled at sampleRate. Should be
// called before any other display method.
func (d *Display) Init(sampleRate float64) error {
	env, err := prepareTerminal()
	if err != nil {
		return errors.Wrap(err, "failed to prepare terminal")
	}

	if err := termbox.Init(); err != nil {
		env.restore()
		return errors.Wrap(err, "failed to init termbox")
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	d.env = env
	d.analyzer = dsp.NewAnalyzer(dsp.AnalyzerConfig{
		SampleRate: sampleRate,
		BinCount:   dsp.FFTSize / 2,
		BinMethod:  dsp.MaxSampleValue(),
	})

	return nil
}

// SetMonstercat sets the monstercat factor applied to the bars. Zero turns it
// off.
func (d *Display) SetMonstercat(factor float64) {
	d.monstercat = factor
}

// Close will stop display and clean up the terminal.
func (d *Display) Close() error {
	termbox.Close()

	if d.env != nil {
		return d.env.restore()
	}

	return nil
}

// Play draws frames at fps until the last frame, the context is done, or the
// user quits with q or Ctrl-C.
func (d *Display) Play(ctx context.Context, frames []dsp.SmoothedFrame, fps int) error {
	if fps <= 0 {
		return errors.New("frame rate must be positive")
	}

	d.frames = len(frames)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go eventPoller(cancel, done)

	defer func() {
		termbox.Interrupt()
		<-done
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for i := range frames {
		if err := d.Write(i, &frames[i]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}

	return nil
}

// eventPoller cancels playback on quit keys. It returns only on an interrupt
// so Play always has someone to interrupt.
func eventPoller(cancel context.CancelFunc, done chan<- struct{}) {
	defer close(done)

	for {
		ev := termbox.PollEvent()

		switch ev.Type {
		case termbox.EventInterrupt:
			return

		case termbox.EventError:
			cancel()

		case termbox.EventKey:
			switch {
			case ev.Ch == 'q', ev.Ch == 'Q':
				cancel()
			case ev.Key == termbox.KeyCtrlC, ev.Key == termbox.KeyEsc:
				cancel()
			}
		}
	}
}

// Write draws one frame.
func (d *Display) Write(idx int, frame *dsp.SmoothedFrame) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return errors.Wrap(err, "failed to clear screen")
	}

	width, height := termbox.Size()

	drawHeader(idx, d.frames, frame, width)

	rows := height - 1 - MeterRows
	if rows > 0 && d.analyzer.Recalculate(width) > 0 {
		d.bars = d.analyzer.Process(d.bars, frame.Bins)
		dsp.Monstercat(d.bars, d.monstercat)
		drawSpectrum(d.bars, 1, rows)
	}

	drawMeters(frame, height-MeterRows, width)

	return d.Flush()
}

func (d *Display) Flush() error {
	return errors.Wrap(termbox.Flush(), "failed to flush screen")
}
