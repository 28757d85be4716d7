package energystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

func seedReadings(t *testing.T, store *MemoryStore, readings ...energy.Reading) {
	t.Helper()
	require.NoError(t, store.InsertReadings(context.Background(), readings))
}

func reading(buildingID int64, meter int, ts time.Time, value float64) energy.Reading {
	return energy.Reading{BuildingID: buildingID, Meter: meter, Timestamp: ts, MeterReading: value}
}

func TestMemoryStoreListBuildingsSorted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.InsertBuildings(ctx, []energy.Building{
		{ID: 3, PrimaryUse: "Library"},
		{ID: 1, PrimaryUse: "Lab"},
		{ID: 2, PrimaryUse: "Hostel"},
	}))

	got, err := store.ListBuildings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(3), got[2].ID)
}

func TestMemoryStoreRecentReadings(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	seedReadings(t, store,
		reading(1, energy.MeterElectricity, base.Add(1*time.Hour), 10),
		reading(1, energy.MeterElectricity, base.Add(3*time.Hour), 30),
		reading(1, energy.MeterElectricity, base.Add(2*time.Hour), 20),
		reading(1, energy.MeterElectricity, base.Add(-2*time.Hour), 99), // before window
		reading(2, energy.MeterElectricity, base.Add(2*time.Hour), 77),  // other building
	)

	got, err := store.RecentReadings(ctx, 1, base, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 30.0, got[0].MeterReading)
	require.Equal(t, 20.0, got[1].MeterReading)
}

func TestMemoryStoreLatestWeather(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	_, found, err := store.LatestWeather(ctx, 1)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.InsertWeather(ctx, []energy.WeatherSample{
		{SiteID: 1, Timestamp: base, AirTemperature: 18},
		{SiteID: 1, Timestamp: base.Add(2 * time.Hour), AirTemperature: 24},
		{SiteID: 2, Timestamp: base.Add(5 * time.Hour), AirTemperature: 30},
	}))

	got, found, err := store.LatestWeather(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 24.0, got.AirTemperature)
}

func TestMemoryStoreLatestElectricityReadingIgnoresChilledWater(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	seedReadings(t, store,
		reading(1, energy.MeterElectricity, base, 50),
		reading(1, energy.MeterChilledWater, base.Add(time.Hour), 15),
	)

	got, found, err := store.LatestElectricityReading(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 50.0, got.MeterReading)
}

func TestMemoryStoreReadingsSinceChronological(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	seedReadings(t, store,
		reading(2, energy.MeterElectricity, base.Add(3*time.Hour), 30),
		reading(1, energy.MeterElectricity, base.Add(1*time.Hour), 10),
		reading(1, energy.MeterChilledWater, base.Add(2*time.Hour), 5),
		reading(1, energy.MeterElectricity, base.Add(-1*time.Hour), 99),
	)

	got, err := store.ReadingsSince(ctx, base)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 10.0, got[0].MeterReading)
	require.Equal(t, 5.0, got[1].MeterReading)
	require.Equal(t, 30.0, got[2].MeterReading)
}

func TestMemoryStoreInsightLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertInsights(ctx, []energy.Insight{
		{ID: "a", Status: energy.InsightActive, CreatedAt: base},
		{ID: "b", Status: energy.InsightActive, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Status: energy.InsightDismissed, CreatedAt: base.Add(2 * time.Hour)},
	}))

	got, err := store.ActiveInsights(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)

	got, err = store.ActiveInsights(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].ID)

	found, err := store.DismissInsight(ctx, "b")
	require.NoError(t, err)
	require.True(t, found)

	got, err = store.ActiveInsights(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)

	found, err = store.DismissInsight(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreResetAllKeepsPipelineOutput(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.InsertBuildings(ctx, []energy.Building{{ID: 1}}))
	seedReadings(t, store, reading(1, energy.MeterElectricity, time.Now(), 10))
	require.NoError(t, store.InsertPrediction(ctx, energy.Prediction{ID: "p-1", BuildingID: 1}))

	require.NoError(t, store.ResetAll(ctx))

	buildings, err := store.ListBuildings(ctx)
	require.NoError(t, err)
	require.Empty(t, buildings)

	readings, err := store.ReadingsSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Empty(t, readings)

	require.Len(t, store.Predictions(), 1)
}
