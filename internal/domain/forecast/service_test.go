package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
	apperrors "github.com/campuswatt/campus-energy/pkg/errors"
)

type stubRepo struct {
	buildings    []energy.Building
	buildingsErr error

	readings    map[int64][]energy.Reading
	readingsErr map[int64]error

	weather    map[int64]energy.WeatherSample
	weatherErr map[int64]error

	insertPredictionErr error
	insertInsightsErr   error

	predictions []energy.Prediction
	insights    []energy.Insight
}

func (r *stubRepo) ListBuildings(ctx context.Context) ([]energy.Building, error) {
	return r.buildings, r.buildingsErr
}

func (r *stubRepo) RecentReadings(ctx context.Context, buildingID int64, since time.Time, limit int) ([]energy.Reading, error) {
	if err := r.readingsErr[buildingID]; err != nil {
		return nil, err
	}
	return r.readings[buildingID], nil
}

func (r *stubRepo) LatestWeather(ctx context.Context, siteID int64) (energy.WeatherSample, bool, error) {
	if err := r.weatherErr[siteID]; err != nil {
		return energy.WeatherSample{}, false, err
	}
	sample, ok := r.weather[siteID]
	return sample, ok, nil
}

func (r *stubRepo) InsertPrediction(ctx context.Context, prediction energy.Prediction) error {
	if r.insertPredictionErr != nil {
		return r.insertPredictionErr
	}
	r.predictions = append(r.predictions, prediction)
	return nil
}

func (r *stubRepo) InsertInsights(ctx context.Context, insights []energy.Insight) error {
	if r.insertInsightsErr != nil {
		return r.insertInsightsErr
	}
	r.insights = append(r.insights, insights...)
	return nil
}

func newTestService(repo *stubRepo) *service {
	return &service{
		cfg:     Config{HistoryWindow: 24 * time.Hour, HistoryLimit: 24},
		repo:    repo,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) },
		newRand: func() *rand.Rand { return pinnedRand(99) },
	}
}

func TestRunPipelineListBuildingsError(t *testing.T) {
	repo := &stubRepo{buildingsErr: errors.New("connection refused")}
	svc := newTestService(repo)

	_, err := svc.RunPipeline(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "store_error"))
	require.Empty(t, repo.predictions)
}

func TestRunPipelineProcessesAllBuildings(t *testing.T) {
	// Actual (200) far above the regression line at 09:00 (~96.7) so the
	// alert insight is guaranteed regardless of the variance draw.
	history := []energy.Reading{
		readingAt(10, 200),
		readingAt(9, 50),
		readingAt(8, 40),
	}
	repo := &stubRepo{
		buildings: []energy.Building{
			{ID: 1, SiteID: 1, PrimaryUse: "Library", SquareFeet: 10000},
			{ID: 2, SiteID: 1, PrimaryUse: "Laboratory", SquareFeet: 10000},
		},
		readings: map[int64][]energy.Reading{1: history, 2: history},
		weather:  map[int64]energy.WeatherSample{1: {SiteID: 1, AirTemperature: 15}},
	}
	svc := newTestService(repo)

	report, err := svc.RunPipeline(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.BuildingsProcessed)
	require.Len(t, repo.predictions, 2)

	for _, p := range repo.predictions {
		require.NotEmpty(t, p.ID)
		require.GreaterOrEqual(t, p.ConfidenceScore, 0.75)
		require.LessOrEqual(t, p.ConfidenceScore, 0.95)
		require.Equal(t, 3, p.Features.HistoricalPoints)
		require.Equal(t, 10000.0, p.Features.BuildingSize)
		require.NotNil(t, p.Features.WeatherTemp)
		require.Equal(t, 15.0, *p.Features.WeatherTemp)
		require.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), p.PredictionDate)
	}

	alerts := insightsOfType(repo.insights, energy.InsightAlert)
	require.Len(t, alerts, 2)
}

func TestRunPipelineDegradesOnFetchFailures(t *testing.T) {
	repo := &stubRepo{
		buildings: []energy.Building{
			{ID: 1, SiteID: 1, PrimaryUse: "Library", SquareFeet: 10000},
			{ID: 2, SiteID: 2, PrimaryUse: "Dormitory", SquareFeet: 20000},
		},
		readings: map[int64][]energy.Reading{
			2: {readingAt(8, 50), readingAt(7, 45)},
		},
		readingsErr: map[int64]error{1: errors.New("query timeout")},
		weatherErr:  map[int64]error{1: errors.New("query timeout")},
	}
	svc := newTestService(repo)

	report, err := svc.RunPipeline(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.BuildingsProcessed)
	require.Len(t, repo.predictions, 2)

	// Building 1 fell back to the size heuristic with no weather snapshot.
	degraded := repo.predictions[0]
	require.Equal(t, int64(1), degraded.BuildingID)
	require.Zero(t, degraded.Features.HistoricalPoints)
	require.Nil(t, degraded.Features.WeatherTemp)
	require.GreaterOrEqual(t, degraded.PredictedConsumption, 500.0)
	require.Less(t, degraded.PredictedConsumption, 520.0)

	for _, in := range repo.insights {
		require.NotEqual(t, int64(1), in.BuildingID)
	}
}

func TestRunPipelineNoInsightsWithoutHistory(t *testing.T) {
	repo := &stubRepo{
		buildings: []energy.Building{{ID: 1, SiteID: 1, PrimaryUse: "Library", SquareFeet: 10000}},
	}
	svc := newTestService(repo)

	_, err := svc.RunPipeline(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.predictions, 1)
	require.Empty(t, repo.insights)
}

func TestRunPipelinePersistErrorIsFatal(t *testing.T) {
	repo := &stubRepo{
		buildings:           []energy.Building{{ID: 1, SiteID: 1, PrimaryUse: "Library", SquareFeet: 10000}},
		insertPredictionErr: errors.New("disk full"),
	}
	svc := newTestService(repo)

	_, err := svc.RunPipeline(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "store_error"))
}
