package forecast

import (
	"math/rand/v2"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

// Weather and size correction factors applied to the raw regression output.
const (
	coolingThresholdC = 25.0
	coolingFactor     = 1.20
	heatingThresholdC = 10.0
	heatingFactor     = 1.15
	sizeFactorBase    = 10000.0
)

// predictConsumption turns recent history into a consumption estimate for
// the given hour. With fewer than two history points, or a degenerate
// hour distribution, it uses the size heuristic instead of the regression.
func predictConsumption(history []energy.Reading, weather *energy.WeatherSample, building energy.Building, currentHour int, rng *rand.Rand) float64 {
	if len(history) < 2 {
		return fallbackPrediction(building, rng)
	}

	hours := make([]float64, len(history))
	consumption := make([]float64, len(history))
	for i, r := range history {
		hours[i] = float64(r.Timestamp.Hour())
		consumption[i] = r.MeterReading
	}

	slope, intercept, ok := linearFit(hours, consumption)
	if !ok {
		return fallbackPrediction(building, rng)
	}

	prediction := slope*float64(currentHour) + intercept

	if weather != nil {
		if weather.AirTemperature > coolingThresholdC {
			prediction *= coolingFactor
		} else if weather.AirTemperature < heatingThresholdC {
			prediction *= heatingFactor
		}
	}

	prediction *= building.SquareFeet / sizeFactorBase

	// Symmetric ±5% variance to keep successive runs from being identical.
	prediction += (rng.Float64() - 0.5) * prediction * 0.1

	return max(prediction, 0)
}

// fallbackPrediction estimates consumption from building size alone.
func fallbackPrediction(building energy.Building, rng *rand.Rand) float64 {
	return building.SquareFeet*0.05 + rng.Float64()*20
}
