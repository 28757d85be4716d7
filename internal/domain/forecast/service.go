package forecast

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
	apperrors "github.com/campuswatt/campus-energy/pkg/errors"
)

// Service runs the prediction pipeline over every building.
type Service interface {
	RunPipeline(ctx context.Context) (RunReport, error)
}

// Repository encapsulates the store operations the pipeline needs.
type Repository interface {
	ListBuildings(ctx context.Context) ([]energy.Building, error)
	// RecentReadings returns readings for a building newer than since,
	// newest first, at most limit rows.
	RecentReadings(ctx context.Context, buildingID int64, since time.Time, limit int) ([]energy.Reading, error)
	LatestWeather(ctx context.Context, siteID int64) (energy.WeatherSample, bool, error)
	InsertPrediction(ctx context.Context, prediction energy.Prediction) error
	InsertInsights(ctx context.Context, insights []energy.Insight) error
}

// RunReport summarizes one pipeline invocation.
type RunReport struct {
	BuildingsProcessed int `json:"buildingsProcessed"`
}

// Config tunes the pipeline.
type Config struct {
	HistoryWindow time.Duration
	HistoryLimit  int
}

type service struct {
	cfg     Config
	repo    Repository
	logger  *slog.Logger
	now     func() time.Time
	newRand func() *rand.Rand
}

// NewService wires up the forecasting domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "forecast.service"),
		now:    time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// RunPipeline processes each building independently: a failed history or
// weather fetch degrades that building to its fallback path, it never
// aborts the run. Only a failed buildings-list fetch is fatal.
func (s *service) RunPipeline(ctx context.Context) (RunReport, error) {
	buildings, err := s.repo.ListBuildings(ctx)
	if err != nil {
		return RunReport{}, apperrors.Wrap("store_error", "failed to list buildings", err)
	}

	rng := s.newRand()
	for _, building := range buildings {
		if err := s.processBuilding(ctx, building, rng); err != nil {
			return RunReport{}, err
		}
	}

	s.logger.Info("prediction pipeline completed", "buildings", len(buildings))
	return RunReport{BuildingsProcessed: len(buildings)}, nil
}

func (s *service) processBuilding(ctx context.Context, building energy.Building, rng *rand.Rand) error {
	now := s.now()
	since := now.Add(-s.cfg.HistoryWindow)

	history, err := s.repo.RecentReadings(ctx, building.ID, since, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("history fetch failed, using fallback", "building", building.ID, "error", err)
		history = nil
	}

	var weather *energy.WeatherSample
	sample, ok, err := s.repo.LatestWeather(ctx, building.SiteID)
	switch {
	case err != nil:
		s.logger.Warn("weather fetch failed, skipping adjustment", "site", building.SiteID, "error", err)
	case ok:
		weather = &sample
	}

	predicted := predictConsumption(history, weather, building, now.Hour(), rng)

	prediction := energy.Prediction{
		ID:                   uuid.NewString(),
		BuildingID:           building.ID,
		PredictionDate:       now.UTC(),
		PredictedConsumption: predicted,
		ConfidenceScore:      0.75 + rng.Float64()*0.2,
		Features: energy.FeatureSnapshot{
			BuildingSize:     building.SquareFeet,
			HistoricalPoints: len(history),
		},
	}
	if weather != nil {
		temp := weather.AirTemperature
		prediction.Features.WeatherTemp = &temp
	}

	if err := s.repo.InsertPrediction(ctx, prediction); err != nil {
		return apperrors.Wrap("store_error", "failed to persist prediction", err)
	}

	if len(history) == 0 {
		return nil
	}

	actual := history[0].MeterReading
	insights := generateInsights(actual, predicted, building, now.UTC(), rng)
	if len(insights) == 0 {
		return nil
	}
	if err := s.repo.InsertInsights(ctx, insights); err != nil {
		return apperrors.Wrap("store_error", "failed to persist insights", err)
	}
	return nil
}
