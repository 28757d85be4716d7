package energystore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/energy"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
)

const schema = `
CREATE TABLE IF NOT EXISTS buildings (
	building_id  BIGINT PRIMARY KEY,
	site_id      BIGINT NOT NULL,
	primary_use  TEXT NOT NULL,
	square_feet  DOUBLE PRECISION NOT NULL,
	floor_count  INT NOT NULL DEFAULT 1,
	year_built   INT NOT NULL DEFAULT 2000
);

CREATE TABLE IF NOT EXISTS energy_consumption (
	id                   BIGSERIAL PRIMARY KEY,
	building_id          BIGINT NOT NULL,
	meter                INT NOT NULL,
	timestamp            TIMESTAMPTZ NOT NULL,
	meter_reading        DOUBLE PRECISION NOT NULL,
	sustainability_score INT,
	anomaly_score        DOUBLE PRECISION,
	predicted_value      DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS energy_consumption_building_ts
	ON energy_consumption (building_id, meter, timestamp DESC);

CREATE TABLE IF NOT EXISTS weather_data (
	id                 BIGSERIAL PRIMARY KEY,
	site_id            BIGINT NOT NULL,
	timestamp          TIMESTAMPTZ NOT NULL,
	air_temperature    DOUBLE PRECISION NOT NULL,
	cloud_coverage     DOUBLE PRECISION NOT NULL DEFAULT 0,
	dew_temperature    DOUBLE PRECISION NOT NULL DEFAULT 0,
	precip_depth_1_hr  DOUBLE PRECISION NOT NULL DEFAULT 0,
	sea_level_pressure DOUBLE PRECISION NOT NULL DEFAULT 0,
	wind_direction     DOUBLE PRECISION NOT NULL DEFAULT 0,
	wind_speed         DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS weather_data_site_ts
	ON weather_data (site_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS ml_predictions (
	id                    TEXT PRIMARY KEY,
	building_id           BIGINT NOT NULL,
	prediction_date       TIMESTAMPTZ NOT NULL,
	predicted_consumption DOUBLE PRECISION NOT NULL,
	confidence_score      DOUBLE PRECISION NOT NULL,
	features              JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS ai_insights (
	id                TEXT PRIMARY KEY,
	building_id       BIGINT NOT NULL,
	insight_type      TEXT NOT NULL,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL,
	priority          TEXT NOT NULL,
	potential_savings DOUBLE PRECISION NOT NULL,
	status            TEXT NOT NULL DEFAULT 'active',
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS ai_insights_status_created
	ON ai_insights (status, created_at DESC);
`

// PostgresStore implements the domain repositories using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the relations if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// ListBuildings returns all buildings ordered by identifier.
func (s *PostgresStore) ListBuildings(ctx context.Context) ([]energy.Building, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT building_id, site_id, primary_use, square_feet, floor_count, year_built
		FROM buildings
		ORDER BY building_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []energy.Building
	for rows.Next() {
		var b energy.Building
		if err := rows.Scan(&b.ID, &b.SiteID, &b.PrimaryUse, &b.SquareFeet, &b.FloorCount, &b.YearBuilt); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// RecentReadings returns a building's readings newer than since, newest first.
func (s *PostgresStore) RecentReadings(ctx context.Context, buildingID int64, since time.Time, limit int) ([]energy.Reading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT building_id, meter, timestamp, meter_reading, sustainability_score
		FROM energy_consumption
		WHERE building_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
		LIMIT $3
	`, buildingID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// LatestWeather returns the most recent weather sample for a site.
func (s *PostgresStore) LatestWeather(ctx context.Context, siteID int64) (energy.WeatherSample, bool, error) {
	var w energy.WeatherSample
	err := s.pool.QueryRow(ctx, `
		SELECT site_id, timestamp, air_temperature, cloud_coverage, dew_temperature,
		       precip_depth_1_hr, sea_level_pressure, wind_direction, wind_speed
		FROM weather_data
		WHERE site_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`, siteID).Scan(&w.SiteID, &w.Timestamp, &w.AirTemperature, &w.CloudCoverage, &w.DewTemperature,
		&w.PrecipDepth1Hr, &w.SeaLevelPressure, &w.WindDirection, &w.WindSpeed)
	if errors.Is(err, pgx.ErrNoRows) {
		return energy.WeatherSample{}, false, nil
	}
	if err != nil {
		return energy.WeatherSample{}, false, err
	}
	return w, true, nil
}

// InsertPrediction appends one pipeline output row.
func (s *PostgresStore) InsertPrediction(ctx context.Context, prediction energy.Prediction) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ml_predictions (id, building_id, prediction_date, predicted_consumption, confidence_score, features)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, prediction.ID, prediction.BuildingID, prediction.PredictionDate,
		prediction.PredictedConsumption, prediction.ConfidenceScore, prediction.Features)
	return err
}

// InsertInsights appends generated insights.
func (s *PostgresStore) InsertInsights(ctx context.Context, insights []energy.Insight) error {
	for _, insight := range insights {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO ai_insights (id, building_id, insight_type, title, description, priority, potential_savings, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, insight.ID, insight.BuildingID, string(insight.Type), insight.Title, insight.Description,
			string(insight.Priority), insight.PotentialSavings, string(insight.Status), insight.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// LatestElectricityReading returns a building's newest electricity reading.
func (s *PostgresStore) LatestElectricityReading(ctx context.Context, buildingID int64) (energy.Reading, bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT building_id, meter, timestamp, meter_reading, sustainability_score
		FROM energy_consumption
		WHERE building_id = $1 AND meter = $2
		ORDER BY timestamp DESC
		LIMIT 1
	`, buildingID, energy.MeterElectricity)
	if err != nil {
		return energy.Reading{}, false, err
	}
	defer rows.Close()
	readings, err := scanReadings(rows)
	if err != nil {
		return energy.Reading{}, false, err
	}
	if len(readings) == 0 {
		return energy.Reading{}, false, nil
	}
	return readings[0], true, nil
}

// ElectricityReadingsSince returns a building's electricity readings in
// chronological order.
func (s *PostgresStore) ElectricityReadingsSince(ctx context.Context, buildingID int64, since time.Time) ([]energy.Reading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT building_id, meter, timestamp, meter_reading, sustainability_score
		FROM energy_consumption
		WHERE building_id = $1 AND meter = $2 AND timestamp >= $3
		ORDER BY timestamp ASC
	`, buildingID, energy.MeterElectricity, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// ReadingsSince returns every building's readings in chronological order.
func (s *PostgresStore) ReadingsSince(ctx context.Context, since time.Time) ([]energy.Reading, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT building_id, meter, timestamp, meter_reading, sustainability_score
		FROM energy_consumption
		WHERE timestamp >= $1
		ORDER BY timestamp ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// ActiveInsights returns the newest active insights.
func (s *PostgresStore) ActiveInsights(ctx context.Context, limit int) ([]energy.Insight, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, building_id, insight_type, title, description, priority, potential_savings, status, created_at
		FROM ai_insights
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, string(energy.InsightActive), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []energy.Insight
	for rows.Next() {
		var in energy.Insight
		if err := rows.Scan(&in.ID, &in.BuildingID, &in.Type, &in.Title, &in.Description,
			&in.Priority, &in.PotentialSavings, &in.Status, &in.CreatedAt); err != nil {
			return nil, err
		}
		insights = append(insights, in)
	}
	return insights, rows.Err()
}

// DismissInsight marks an insight dismissed; found reports whether a row matched.
func (s *PostgresStore) DismissInsight(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE ai_insights SET status = $1 WHERE id = $2
	`, string(energy.InsightDismissed), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ResetAll clears readings, weather and buildings before reseeding.
func (s *PostgresStore) ResetAll(ctx context.Context) error {
	for _, table := range []string{"energy_consumption", "weather_data", "buildings"} {
		if _, err := s.pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// InsertBuildings inserts reference rows.
func (s *PostgresStore) InsertBuildings(ctx context.Context, buildings []energy.Building) error {
	for _, b := range buildings {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO buildings (building_id, site_id, primary_use, square_feet, floor_count, year_built)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, b.ID, b.SiteID, b.PrimaryUse, b.SquareFeet, b.FloorCount, b.YearBuilt)
		if err != nil {
			return err
		}
	}
	return nil
}

// InsertWeather bulk-inserts weather samples.
func (s *PostgresStore) InsertWeather(ctx context.Context, samples []energy.WeatherSample) error {
	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"weather_data"},
		[]string{"site_id", "timestamp", "air_temperature", "cloud_coverage", "dew_temperature",
			"precip_depth_1_hr", "sea_level_pressure", "wind_direction", "wind_speed"},
		pgx.CopyFromSlice(len(samples), func(i int) ([]any, error) {
			w := samples[i]
			return []any{w.SiteID, w.Timestamp, w.AirTemperature, w.CloudCoverage, w.DewTemperature,
				w.PrecipDepth1Hr, w.SeaLevelPressure, w.WindDirection, w.WindSpeed}, nil
		}),
	)
	return err
}

// InsertReadings bulk-inserts meter readings.
func (s *PostgresStore) InsertReadings(ctx context.Context, readings []energy.Reading) error {
	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"energy_consumption"},
		[]string{"building_id", "meter", "timestamp", "meter_reading", "sustainability_score"},
		pgx.CopyFromSlice(len(readings), func(i int) ([]any, error) {
			r := readings[i]
			return []any{r.BuildingID, r.Meter, r.Timestamp, r.MeterReading, r.SustainabilityScore}, nil
		}),
	)
	return err
}

func scanReadings(rows pgx.Rows) ([]energy.Reading, error) {
	var readings []energy.Reading
	for rows.Next() {
		var r energy.Reading
		if err := rows.Scan(&r.BuildingID, &r.Meter, &r.Timestamp, &r.MeterReading, &r.SustainabilityScore); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

var (
	_ forecast.Repository  = (*PostgresStore)(nil)
	_ dashboard.Repository = (*PostgresStore)(nil)
	_ seeder.Repository    = (*PostgresStore)(nil)
)
