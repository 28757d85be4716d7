package forecast

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/campuswatt/campus-energy/internal/domain/energy"
)

var optimizationTips = []string{
	"Consider implementing smart lighting controls",
	"HVAC system optimization could reduce consumption by 15%",
	"Installing smart sensors could improve efficiency",
	"Schedule equipment to run during off-peak hours",
}

// generateInsights compares actual against predicted consumption and emits
// zero to three categorized insights. The alert and success checks are
// deterministic; the optimization tip fires with probability 0.3.
func generateInsights(actual, predicted float64, building energy.Building, now time.Time, rng *rand.Rand) []energy.Insight {
	var insights []energy.Insight

	if actual > predicted*1.2 {
		overage := (actual - predicted) / predicted * 100
		insights = append(insights, energy.Insight{
			ID:               uuid.NewString(),
			BuildingID:       building.ID,
			Type:             energy.InsightAlert,
			Title:            "High Energy Consumption Detected",
			Description:      fmt.Sprintf("%s is consuming %.1f%% more energy than predicted. Check HVAC systems and lighting.", building.PrimaryUse, overage),
			Priority:         energy.PriorityHigh,
			PotentialSavings: (actual - predicted) * 0.7,
			Status:           energy.InsightActive,
			CreatedAt:        now,
		})
	}

	if actual < predicted*0.8 {
		improvement := (predicted - actual) / predicted * 100
		insights = append(insights, energy.Insight{
			ID:               uuid.NewString(),
			BuildingID:       building.ID,
			Type:             energy.InsightSuccess,
			Title:            "Excellent Energy Efficiency",
			Description:      fmt.Sprintf("%s is performing %.1f%% better than expected. Great job!", building.PrimaryUse, improvement),
			Priority:         energy.PriorityLow,
			PotentialSavings: 0,
			Status:           energy.InsightActive,
			CreatedAt:        now,
		})
	}

	if rng.Float64() > 0.7 {
		insights = append(insights, energy.Insight{
			ID:               uuid.NewString(),
			BuildingID:       building.ID,
			Type:             energy.InsightOptimization,
			Title:            "Energy Optimization Opportunity",
			Description:      optimizationTips[rng.IntN(len(optimizationTips))],
			Priority:         energy.PriorityMedium,
			PotentialSavings: actual * 0.1,
			Status:           energy.InsightActive,
			CreatedAt:        now,
		})
	}

	return insights
}
