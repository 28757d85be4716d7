package forecast

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

func pinnedRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func readingAt(hour int, value float64) energy.Reading {
	return energy.Reading{
		BuildingID:   1,
		Meter:        energy.MeterElectricity,
		Timestamp:    time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC),
		MeterReading: value,
	}
}

func testBuilding(squareFeet float64) energy.Building {
	return energy.Building{ID: 1, SiteID: 1, PrimaryUse: "Library", SquareFeet: squareFeet}
}

func TestPredictFallbackWithShortHistory(t *testing.T) {
	building := testBuilding(10000)

	for _, history := range [][]energy.Reading{
		nil,
		{readingAt(9, 80)},
	} {
		got := predictConsumption(history, nil, building, 12, pinnedRand(1))
		require.GreaterOrEqual(t, got, 500.0)
		require.Less(t, got, 520.0)
	}
}

func TestPredictFallbackWithZeroHourVariance(t *testing.T) {
	// Three readings at the same hour leave the regression denominator at
	// zero; the size heuristic must take over instead of emitting NaN.
	history := []energy.Reading{
		readingAt(9, 80),
		readingAt(9, 90),
		readingAt(9, 100),
	}
	got := predictConsumption(history, nil, testBuilding(10000), 12, pinnedRand(7))
	require.False(t, got != got, "prediction must not be NaN")
	require.GreaterOrEqual(t, got, 500.0)
	require.Less(t, got, 520.0)
}

func TestPredictUsesRegression(t *testing.T) {
	// y = 10x + 20 exactly, size factor 1, no weather: the only spread
	// left is the ±5% variance band around the evaluated line.
	history := []energy.Reading{
		readingAt(2, 40),
		readingAt(4, 60),
		readingAt(6, 80),
		readingAt(8, 100),
	}
	center := 10.0*12 + 20

	got := predictConsumption(history, nil, testBuilding(10000), 12, pinnedRand(3))
	require.GreaterOrEqual(t, got, center*0.95)
	require.LessOrEqual(t, got, center*1.05)
}

func TestPredictWeatherAdjustment(t *testing.T) {
	history := []energy.Reading{
		readingAt(2, 40),
		readingAt(4, 60),
		readingAt(6, 80),
		readingAt(8, 100),
	}
	center := 10.0*12 + 20

	cases := []struct {
		name   string
		temp   float64
		factor float64
	}{
		{name: "cooling load", temp: 30, factor: 1.20},
		{name: "heating load", temp: 5, factor: 1.15},
		{name: "mild weather", temp: 15, factor: 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			weather := &energy.WeatherSample{SiteID: 1, AirTemperature: tc.temp}
			got := predictConsumption(history, weather, testBuilding(10000), 12, pinnedRand(11))
			require.GreaterOrEqual(t, got, center*tc.factor*0.95)
			require.LessOrEqual(t, got, center*tc.factor*1.05)
		})
	}
}

func TestPredictScalesWithBuildingSize(t *testing.T) {
	history := []energy.Reading{
		readingAt(2, 40),
		readingAt(4, 60),
	}
	center := (10.0*12 + 20) * (25000.0 / 10000.0)

	got := predictConsumption(history, nil, testBuilding(25000), 12, pinnedRand(5))
	require.GreaterOrEqual(t, got, center*0.95)
	require.LessOrEqual(t, got, center*1.05)
}

func TestPredictNeverNegative(t *testing.T) {
	// A steeply falling line evaluated late in the day goes negative
	// before clamping.
	history := []energy.Reading{
		readingAt(1, 100),
		readingAt(2, 10),
	}
	for seed := uint64(0); seed < 100; seed++ {
		got := predictConsumption(history, nil, testBuilding(10000), 23, pinnedRand(seed))
		require.GreaterOrEqual(t, got, 0.0)
	}
}

func TestFallbackPredictionRange(t *testing.T) {
	building := testBuilding(8000)
	for seed := uint64(0); seed < 100; seed++ {
		got := fallbackPrediction(building, pinnedRand(seed))
		require.GreaterOrEqual(t, got, 400.0)
		require.Less(t, got, 420.0)
	}
}
