package dashboard

import (
	"fmt"
	"math"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

// defaultSustainabilityScore is used when a building has no scored reading.
const defaultSustainabilityScore = 75

// computeTrend splits a chronological series into its first three and last
// three points and compares the means. Fewer than three points is stable.
func computeTrend(series []float64) Trend {
	if len(series) < 3 {
		return TrendStable
	}
	earlier := mean(series[:3])
	recent := mean(series[len(series)-3:])
	switch {
	case recent > earlier*1.1:
		return TrendUp
	case recent < earlier*0.9:
		return TrendDown
	default:
		return TrendStable
	}
}

// computeStatus classifies current usage against the size-derived capacity
// estimate. Both thresholds are strict.
func computeStatus(currentUsage, maxUsage float64) Status {
	if maxUsage <= 0 {
		return StatusNormal
	}
	usagePercent := currentUsage / maxUsage * 100
	switch {
	case usagePercent > 90:
		return StatusCritical
	case usagePercent > 75:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// bucketReadings groups readings by hour-of-day label and averages them.
// Buckets appear in the order their hour label is first seen while
// scanning chronologically, matching how the chart consumes them.
func bucketReadings(readings []energy.Reading) []HourlyBucket {
	type acc struct {
		sum   float64
		count int
	}
	byHour := make(map[string]*acc)
	var order []string

	for _, r := range readings {
		key := fmt.Sprintf("%02d:00", r.Timestamp.Hour())
		bucket, ok := byHour[key]
		if !ok {
			bucket = &acc{}
			byHour[key] = bucket
			order = append(order, key)
		}
		bucket.sum += r.MeterReading
		bucket.count++
	}

	out := make([]HourlyBucket, 0, len(order))
	for _, key := range order {
		bucket := byHour[key]
		avg := bucket.sum / float64(bucket.count)
		out = append(out, HourlyBucket{
			Time:    key,
			Usage:   int(math.Round(avg)),
			Optimal: int(math.Round(avg * 0.85)),
		})
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
