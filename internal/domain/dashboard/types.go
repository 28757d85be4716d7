package dashboard

import (
	"time"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

// Trend labels the direction of a building's trailing consumption.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Status classifies current usage against estimated capacity.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// BuildingStatus is a display-ready per-building view.
type BuildingStatus struct {
	Building            string  `json:"building"`
	CurrentUsage        float64 `json:"currentUsage"`
	MaxUsage            float64 `json:"maxUsage"`
	Trend               Trend   `json:"trend"`
	SustainabilityScore int     `json:"sustainabilityScore"`
	Status              Status  `json:"status"`
}

// HourlyBucket is one averaged point of the 24h chart series.
type HourlyBucket struct {
	Time    string `json:"time"`
	Usage   int    `json:"usage"`
	Optimal int    `json:"optimal"`
}

// Stats is the dashboard summary card payload.
type Stats struct {
	TotalUsage             int `json:"totalUsage"`
	ConnectedBuildings     int `json:"connectedBuildings"`
	AvgSustainabilityScore int `json:"avgSustainabilityScore"`
}

// Report is the full dashboard payload returned to the frontend.
type Report struct {
	Buildings []BuildingStatus `json:"buildings"`
	ChartData []HourlyBucket   `json:"chartData"`
	Insights  []energy.Insight `json:"insights"`
	Stats     Stats            `json:"stats"`
}

// Config tunes the aggregation reporter.
type Config struct {
	TrailingWindow time.Duration
	InsightLimit   int
	ReportTTL      time.Duration
}
