package graphic

import "testing"

func TestStopAndTop(t *testing.T) {
	var tests = []struct {
		value float64
		rows  int
		full  int
		top   rune
	}{
		{0, 10, 0, barRunes[0]},
		{1, 10, 10, barRunes[0]},
		{2, 10, 10, barRunes[0]},
		{-1, 10, 0, barRunes[0]},
		{0.5, 10, 5, barRunes[0]},
		{0.55, 10, 5, barRunes[4]},
		{0.125, 1, 0, barRunes[1]},
	}

	for _, test := range tests {
		full, top := stopAndTop(test.value, test.rows)
		if full != test.full || top != test.top {
			t.Errorf("stopAndTop(%g, %d) = %d %q, want %d %q",
				test.value, test.rows, full, top, test.full, test.top)
		}
	}
}
