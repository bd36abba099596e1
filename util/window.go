package util

// MovingWindow keeps a running sum over the most recent values pushed into it.
//
// values are stored in a ring. head points at the oldest value, and the
// newest value lives at head+length-1.
type MovingWindow struct {
	values []float64

	head   int
	length int

	sum float64
}

// NewMovingWindow returns a new moving window holding at most size values.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{
		values: make([]float64, size),
	}
}

// Update pushes value into the window. If the window is at capacity, the
// oldest value is dropped first.
func (mw *MovingWindow) Update(value float64) {
	if mw.length == len(mw.values) {
		mw.Drop(1)
	}

	mw.values[(mw.head+mw.length)%len(mw.values)] = value
	mw.length++
	mw.sum += value
}

// Drop removes up to count of the oldest values.
func (mw *MovingWindow) Drop(count int) {
	for ; count > 0 && mw.length > 0; count-- {
		mw.sum -= mw.values[mw.head]
		mw.values[mw.head] = 0
		mw.head = (mw.head + 1) % len(mw.values)
		mw.length--
	}

	if mw.length == 0 {
		// start clean so rounding from the running sum does not leak.
		mw.sum = 0
	}
}

// Len returns the number of values in the window.
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns the maximum number of values in the window.
func (mw *MovingWindow) Cap() int {
	return len(mw.values)
}

// Sum returns the sum of the values in the window.
func (mw *MovingWindow) Sum() float64 {
	return mw.sum
}

// Mean returns the average of the values in the window, or 0 when empty.
func (mw *MovingWindow) Mean() float64 {
	if mw.length == 0 {
		return 0
	}
	return mw.sum / float64(mw.length)
}
