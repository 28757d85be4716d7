package dashboard

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
	apperrors "github.com/campuswatt/campus-energy/pkg/errors"
)

// Service exposes the aggregation reporter.
type Service interface {
	Report(ctx context.Context) (Report, error)
	DismissInsight(ctx context.Context, id string) error
}

// Repository encapsulates the read and dismiss operations the reporter needs.
type Repository interface {
	ListBuildings(ctx context.Context) ([]energy.Building, error)
	LatestElectricityReading(ctx context.Context, buildingID int64) (energy.Reading, bool, error)
	// ElectricityReadingsSince returns electricity readings for one
	// building newer than since, in chronological order.
	ElectricityReadingsSince(ctx context.Context, buildingID int64, since time.Time) ([]energy.Reading, error)
	// ReadingsSince returns all buildings' readings newer than since, in
	// chronological order.
	ReadingsSince(ctx context.Context, since time.Time) ([]energy.Reading, error)
	ActiveInsights(ctx context.Context, limit int) ([]energy.Insight, error)
	DismissInsight(ctx context.Context, id string) (bool, error)
}

type service struct {
	cfg    Config
	repo   Repository
	cache  ReportCache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the dashboard domain.
func NewService(cfg Config, repo Repository, cache ReportCache, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		logger: logger.With("component", "dashboard.service"),
		now:    time.Now,
	}
}

// Report assembles the display-ready dashboard payload. A building with no
// matching readings degrades to zeroed defaults, never an error; only store
// failures abort the request.
func (s *service) Report(ctx context.Context) (Report, error) {
	if cached, ok, err := s.cache.GetReport(ctx); err != nil {
		s.logger.Warn("report cache lookup failed", "error", err)
	} else if ok {
		return cached, nil
	}

	buildings, err := s.repo.ListBuildings(ctx)
	if err != nil {
		return Report{}, apperrors.Wrap("store_error", "failed to list buildings", err)
	}

	since := s.now().Add(-s.cfg.TrailingWindow)

	statuses := make([]BuildingStatus, 0, len(buildings))
	for _, building := range buildings {
		status, err := s.buildingStatus(ctx, building, since)
		if err != nil {
			return Report{}, err
		}
		statuses = append(statuses, status)
	}

	readings, err := s.repo.ReadingsSince(ctx, since)
	if err != nil {
		return Report{}, apperrors.Wrap("store_error", "failed to load chart readings", err)
	}

	insights, err := s.repo.ActiveInsights(ctx, s.cfg.InsightLimit)
	if err != nil {
		return Report{}, apperrors.Wrap("store_error", "failed to load insights", err)
	}
	if insights == nil {
		insights = []energy.Insight{}
	}

	report := Report{
		Buildings: statuses,
		ChartData: bucketReadings(readings),
		Insights:  insights,
		Stats:     summarize(statuses),
	}

	if err := s.cache.SaveReport(ctx, report, s.cfg.ReportTTL); err != nil {
		s.logger.Warn("report cache save failed", "error", err)
	}
	return report, nil
}

// DismissInsight flips an active insight to dismissed.
func (s *service) DismissInsight(ctx context.Context, id string) error {
	found, err := s.repo.DismissInsight(ctx, id)
	if err != nil {
		return apperrors.Wrap("store_error", "failed to dismiss insight", err)
	}
	if !found {
		return apperrors.Wrap("not_found", "insight not found", nil)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("report cache invalidation failed", "error", err)
	}
	return nil
}

func (s *service) buildingStatus(ctx context.Context, building energy.Building, since time.Time) (BuildingStatus, error) {
	var (
		currentUsage float64
		score        = defaultSustainabilityScore
	)
	latest, ok, err := s.repo.LatestElectricityReading(ctx, building.ID)
	if err != nil {
		return BuildingStatus{}, apperrors.Wrap("store_error", "failed to load latest reading", err)
	}
	if ok {
		currentUsage = latest.MeterReading
		if latest.SustainabilityScore != nil {
			score = *latest.SustainabilityScore
		}
	}

	trendReadings, err := s.repo.ElectricityReadingsSince(ctx, building.ID, since)
	if err != nil {
		return BuildingStatus{}, apperrors.Wrap("store_error", "failed to load trend readings", err)
	}
	series := make([]float64, len(trendReadings))
	for i, r := range trendReadings {
		series[i] = r.MeterReading
	}

	maxUsage := building.SquareFeet * 0.01
	return BuildingStatus{
		Building:            building.PrimaryUse,
		CurrentUsage:        currentUsage,
		MaxUsage:            maxUsage,
		Trend:               computeTrend(series),
		SustainabilityScore: score,
		Status:              computeStatus(currentUsage, maxUsage),
	}, nil
}

func summarize(statuses []BuildingStatus) Stats {
	var totalUsage float64
	var scoreSum int
	for _, st := range statuses {
		totalUsage += st.CurrentUsage
		scoreSum += st.SustainabilityScore
	}
	avgScore := 0
	if len(statuses) > 0 {
		avgScore = int(math.Round(float64(scoreSum) / float64(len(statuses))))
	}
	return Stats{
		TotalUsage:             int(math.Round(totalUsage)),
		ConnectedBuildings:     len(statuses),
		AvgSustainabilityScore: avgScore,
	}
}
