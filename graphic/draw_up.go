package graphic

import (
	"fmt"
	"math"

	"github.com/nsf/termbox-go"

	"github.com/noriah/sonica/dsp"
)

// stopAndTop returns how many whole rows a value in [0, 1] fills out of rows,
// and the partial rune for the row above them.
func stopAndTop(value float64, rows int) (int, rune) {
	steps := int(math.Min(math.Max(value, 0), 1) * float64(rows*NumRunes))

	full := steps / NumRunes
	if full >= rows {
		return rows, barRunes[0]
	}

	return full, barRunes[steps%NumRunes]
}

// drawSpectrum draws one column per bin, growing up from the bottom of the
// rows starting at top.
func drawSpectrum(bins []float64, top, rows int) {
	bottom := top + rows - 1

	for xCol, v := range bins {
		full, part := stopAndTop(v, rows)

		xRow := bottom
		for ; xRow > bottom-full; xRow-- {
			termbox.SetCell(xCol, xRow, BarRune, termbox.ColorDefault, termbox.ColorDefault)
		}

		if part != barRunes[0] && xRow >= top {
			termbox.SetCell(xCol, xRow, part, termbox.ColorDefault, termbox.ColorDefault)
		}
	}
}

// drawMeters draws horizontal bass, mid, high and rms meters.
func drawMeters(frame *dsp.SmoothedFrame, top, width int) {
	meters := [MeterRows]struct {
		label string
		value float64
		color termbox.Attribute
	}{
		{"bass", frame.Bass, termbox.ColorRed},
		{"mid ", frame.Mid, termbox.ColorYellow},
		{"high", frame.High, termbox.ColorCyan},
		{"rms ", frame.RMS, termbox.ColorGreen},
	}

	for i, m := range meters {
		xCol := drawString(0, top+i, m.label+" ", termbox.ColorDefault, termbox.ColorDefault)

		n := int(m.value * float64(width-xCol))
		for x := 0; x < n; x++ {
			termbox.SetCell(xCol+x, top+i, BarRune, m.color, termbox.ColorDefault)
		}
	}
}

// drawHeader draws the status line. It lights up on beats and fades with the
// beat envelope.
func drawHeader(idx, total int, frame *dsp.SmoothedFrame, width int) {
	bg := termbox.ColorDefault
	if frame.BeatIntensity > 0.5 {
		bg = termbox.ColorMagenta
	}

	line := fmt.Sprintf(" %7.2fs  frame %d/%d  phase %4.2f  centroid %4.2f  flux %4.2f  [q] quit",
		frame.Time, idx+1, total, frame.BeatPhase, frame.SpectralCentroid, frame.SpectralFlux)

	for x := drawString(0, 0, line, termbox.ColorDefault|termbox.AttrBold, bg); x < width; x++ {
		termbox.SetCell(x, 0, ' ', termbox.ColorDefault, bg)
	}
}

func drawString(x, y int, s string, fg, bg termbox.Attribute) int {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, bg)
		x++
	}
	return x
}
