// Package stats provides the running aggregates behind the status line.
package stats

import "math"

// Epsilon bounds the error tolerated by FuzzyEqual.
const Epsilon = 1e-6

// FuzzyEqual compares floats within Epsilon.
func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates mean and variance one sample at a time, so a
// long simulation never has to keep its samples around. Welford's
// update keeps the sum of squared deviations numerically stable.
type Statistic struct {
	count      int
	mean       float64
	sumSquares float64
}

// Push folds one sample into the aggregate.
func (s *Statistic) Push(value float64) {
	s.count++
	delta := value - s.mean
	s.mean += delta / float64(s.count)
	s.sumSquares += delta * (value - s.mean)
}

// Mean returns the average of all pushed samples, zero when empty.
func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance returns the sample variance, zero below two samples.
func (s *Statistic) Variance() float64 {
	if s.count <= 1 {
		return 0
	}
	return s.sumSquares / float64(s.count-1)
}

// Stdev returns the sample standard deviation.
func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	return math.Sqrt(s.Variance() / float64(s.count))
}

// Iterations returns the number of pushed samples.
func (s *Statistic) Iterations() int {
	return s.count
}
