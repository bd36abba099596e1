package dsp

import "math"

// Monstercat does monstercat "smoothing" on bars: every bar props up its
// neighbors, falling off by factor per bar of distance. A factor of 1 or less
// does nothing.
//
// https://github.com/karlstav/cava/blob/master/cava.c#L157
func Monstercat(bars []float64, factor float64) {
	if factor <= 1 {
		return
	}

	// "pow is probably doing that same logarithm in every call, so you're
	//  extracting out half the work"
	var vFactP = math.Log(factor)

	count := len(bars)

	for xBin := 0; xBin < count; xBin++ {
		for xTrgt := 0; xTrgt < count; xTrgt++ {
			if xBin == xTrgt {
				continue
			}

			tmp := bars[xBin] / math.Exp(vFactP*math.Abs(float64(xBin-xTrgt)))

			if tmp > bars[xTrgt] {
				bars[xTrgt] = tmp
			}
		}
	}
}
