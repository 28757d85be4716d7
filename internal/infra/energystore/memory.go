package energystore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/energy"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
)

// MemoryStore is an in-memory Store used for tests and DSN-less dev runs.
type MemoryStore struct {
	mu sync.RWMutex

	buildings   []energy.Building
	readings    []energy.Reading
	weather     []energy.WeatherSample
	predictions []energy.Prediction
	insights    []energy.Insight
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListBuildings implements forecast.Repository and dashboard.Repository.
func (s *MemoryStore) ListBuildings(_ context.Context) ([]energy.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]energy.Building(nil), s.buildings...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RecentReadings implements forecast.Repository.
func (s *MemoryStore) RecentReadings(_ context.Context, buildingID int64, since time.Time, limit int) ([]energy.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []energy.Reading
	for _, r := range s.readings {
		if r.BuildingID == buildingID && !r.Timestamp.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LatestWeather implements forecast.Repository.
func (s *MemoryStore) LatestWeather(_ context.Context, siteID int64) (energy.WeatherSample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		latest energy.WeatherSample
		found  bool
	)
	for _, w := range s.weather {
		if w.SiteID != siteID {
			continue
		}
		if !found || w.Timestamp.After(latest.Timestamp) {
			latest = w
			found = true
		}
	}
	return latest, found, nil
}

// InsertPrediction implements forecast.Repository.
func (s *MemoryStore) InsertPrediction(_ context.Context, prediction energy.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions = append(s.predictions, prediction)
	return nil
}

// InsertInsights implements forecast.Repository.
func (s *MemoryStore) InsertInsights(_ context.Context, insights []energy.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = append(s.insights, insights...)
	return nil
}

// LatestElectricityReading implements dashboard.Repository.
func (s *MemoryStore) LatestElectricityReading(_ context.Context, buildingID int64) (energy.Reading, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		latest energy.Reading
		found  bool
	)
	for _, r := range s.readings {
		if r.BuildingID != buildingID || r.Meter != energy.MeterElectricity {
			continue
		}
		if !found || r.Timestamp.After(latest.Timestamp) {
			latest = r
			found = true
		}
	}
	return latest, found, nil
}

// ElectricityReadingsSince implements dashboard.Repository.
func (s *MemoryStore) ElectricityReadingsSince(_ context.Context, buildingID int64, since time.Time) ([]energy.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []energy.Reading
	for _, r := range s.readings {
		if r.BuildingID == buildingID && r.Meter == energy.MeterElectricity && !r.Timestamp.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// ReadingsSince implements dashboard.Repository.
func (s *MemoryStore) ReadingsSince(_ context.Context, since time.Time) ([]energy.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []energy.Reading
	for _, r := range s.readings {
		if !r.Timestamp.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// ActiveInsights implements dashboard.Repository.
func (s *MemoryStore) ActiveInsights(_ context.Context, limit int) ([]energy.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []energy.Insight
	for _, in := range s.insights {
		if in.Status == energy.InsightActive {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DismissInsight implements dashboard.Repository.
func (s *MemoryStore) DismissInsight(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights[i].Status = energy.InsightDismissed
			return true, nil
		}
	}
	return false, nil
}

// ResetAll implements seeder.Repository.
func (s *MemoryStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = nil
	s.weather = nil
	s.buildings = nil
	return nil
}

// InsertBuildings implements seeder.Repository.
func (s *MemoryStore) InsertBuildings(_ context.Context, buildings []energy.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buildings = append(s.buildings, buildings...)
	return nil
}

// InsertWeather implements seeder.Repository.
func (s *MemoryStore) InsertWeather(_ context.Context, samples []energy.WeatherSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = append(s.weather, samples...)
	return nil
}

// InsertReadings implements seeder.Repository.
func (s *MemoryStore) InsertReadings(_ context.Context, readings []energy.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = append(s.readings, readings...)
	return nil
}

// Predictions returns a snapshot of stored predictions, newest last.
func (s *MemoryStore) Predictions() []energy.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]energy.Prediction(nil), s.predictions...)
}

// Insights returns a snapshot of stored insights.
func (s *MemoryStore) Insights() []energy.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]energy.Insight(nil), s.insights...)
}

var (
	_ forecast.Repository  = (*MemoryStore)(nil)
	_ dashboard.Repository = (*MemoryStore)(nil)
	_ seeder.Repository    = (*MemoryStore)(nil)
)
