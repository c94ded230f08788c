package stats

import "gonum.org/v1/gonum/stat/distuv"

var unitNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed z value for a confidence level given in
// percent, for example 95 for a 95% interval.
func ZVal(confidencePercent float64) float64 {
	return unitNormal.Quantile((1 + confidencePercent/100) / 2)
}
