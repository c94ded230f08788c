package stats

import "gonum.org/v1/gonum/stat"

// RollingAverage keeps the mean over the last N pushed values.
type RollingAverage struct {
	maxSize int
	values  []float64
	average float64
}

// NewRollingAverage creates an average over a window of the given size.
func NewRollingAverage(maxSize int) *RollingAverage {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RollingAverage{
		maxSize: maxSize,
		values:  make([]float64, 0, maxSize),
	}
}

// Add pushes a value, evicting the oldest when the window is full.
func (r *RollingAverage) Add(value float64) {
	r.values = append(r.values, value)
	if len(r.values) > r.maxSize {
		r.values = r.values[1:]
	}
	r.average = stat.Mean(r.values, nil)
}

// Average returns the mean over the window, zero when empty.
func (r *RollingAverage) Average() float64 {
	return r.average
}

// Size returns the number of values in the window.
func (r *RollingAverage) Size() int {
	return len(r.values)
}
