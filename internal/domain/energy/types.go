// Package energy holds the record types shared by the forecasting,
// dashboard and seeding domains. They mirror the five store relations.
package energy

import "time"

// Meter channels distinguish utility types for the same building/timestamp.
const (
	MeterElectricity  = 0
	MeterChilledWater = 1
)

// InsightType categorizes generated insights.
type InsightType string

const (
	InsightAlert        InsightType = "alert"
	InsightSuccess      InsightType = "success"
	InsightOptimization InsightType = "optimization"
)

// Priority ranks insights for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// InsightStatus is the insight lifecycle state.
type InsightStatus string

const (
	InsightActive    InsightStatus = "active"
	InsightDismissed InsightStatus = "dismissed"
)

// Building is static reference data for a campus building.
type Building struct {
	ID         int64   `json:"building_id"`
	SiteID     int64   `json:"site_id"`
	PrimaryUse string  `json:"primary_use"`
	SquareFeet float64 `json:"square_feet"`
	FloorCount int     `json:"floor_count"`
	YearBuilt  int     `json:"year_built"`
}

// Reading is one immutable meter sample.
type Reading struct {
	BuildingID          int64     `json:"building_id"`
	Meter               int       `json:"meter"`
	Timestamp           time.Time `json:"timestamp"`
	MeterReading        float64   `json:"meter_reading"`
	SustainabilityScore *int      `json:"sustainability_score,omitempty"`
	AnomalyScore        *float64  `json:"anomaly_score,omitempty"`
	PredictedValue      *float64  `json:"predicted_value,omitempty"`
}

// WeatherSample is one site-level weather observation.
type WeatherSample struct {
	SiteID           int64     `json:"site_id"`
	Timestamp        time.Time `json:"timestamp"`
	AirTemperature   float64   `json:"air_temperature"`
	CloudCoverage    float64   `json:"cloud_coverage"`
	DewTemperature   float64   `json:"dew_temperature"`
	PrecipDepth1Hr   float64   `json:"precip_depth_1_hr"`
	SeaLevelPressure float64   `json:"sea_level_pressure"`
	WindDirection    float64   `json:"wind_direction"`
	WindSpeed        float64   `json:"wind_speed"`
}

// FeatureSnapshot records the inputs a prediction was computed from.
type FeatureSnapshot struct {
	WeatherTemp      *float64 `json:"weather_temp"`
	BuildingSize     float64  `json:"building_size"`
	HistoricalPoints int      `json:"historical_points"`
}

// Prediction is an append-only pipeline output row.
type Prediction struct {
	ID                   string          `json:"id"`
	BuildingID           int64           `json:"building_id"`
	PredictionDate       time.Time       `json:"prediction_date"`
	PredictedConsumption float64         `json:"predicted_consumption"`
	ConfidenceScore      float64         `json:"confidence_score"`
	Features             FeatureSnapshot `json:"features"`
}

// Insight is a categorized textual finding about a building.
type Insight struct {
	ID               string        `json:"id"`
	BuildingID       int64         `json:"building_id"`
	Type             InsightType   `json:"insight_type"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Priority         Priority      `json:"priority"`
	PotentialSavings float64       `json:"potential_savings"`
	Status           InsightStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}
