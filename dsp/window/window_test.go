package window

import (
	"math"
	"testing"
)

func TestHannTable(t *testing.T) {
	const size = 2048
	table := Table(Hann, size)

	if len(table) != size {
		t.Fatalf("len = %d, want %d", len(table), size)
	}

	if table[0] != 0 || math.Abs(table[size-1]) > 1e-12 {
		t.Errorf("edges = %g, %g; want 0", table[0], table[size-1])
	}

	for i := 0; i < size/2; i++ {
		if d := math.Abs(table[i] - table[size-1-i]); d > 1e-12 {
			t.Fatalf("table not symmetric at %d: %g vs %g", i, table[i], table[size-1-i])
		}
	}

	for i, v := range table {
		if v < 0 || v > 1 {
			t.Fatalf("table[%d] = %g out of [0, 1]", i, v)
		}
	}
}

func TestHammingEdges(t *testing.T) {
	table := Table(Hamming, 64)
	want := 25.0/46.0 - (1 - 25.0/46.0)

	if math.Abs(table[0]-want) > 1e-12 {
		t.Errorf("table[0] = %g, want %g", table[0], want)
	}
}

func TestShortBuffers(t *testing.T) {
	if got := Table(Hann, 1); got[0] != 1 {
		t.Errorf("Table(Hann, 1) = %v, want [1]", got)
	}

	if got := Table(Hann, 0); len(got) != 0 {
		t.Errorf("Table(Hann, 0) = %v, want empty", got)
	}
}
