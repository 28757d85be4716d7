package forecast

// linearFit computes an ordinary least squares line through (x, y).
// ok is false when fewer than two points are given or all x values are
// identical, in which case the closed-form denominator is zero and the
// caller must fall back to the size heuristic.
func linearFit(x, y []float64) (slope, intercept float64, ok bool) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, 0, false
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}
