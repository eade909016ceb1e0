// services/plans.go - freemium plan gating
package services

import "github.com/Gojer16/Elevare-sub001/models"

type Feature string

const (
	FeatureUnlimitedHistory Feature = "unlimited_history"
	FeatureAdvancedStats    Feature = "advanced_stats"
	FeatureCustomThemes     Feature = "custom_themes"
)

// FreeHistoryDays is how far back the task history reaches on the free plan.
const FreeHistoryDays = 14

var planFeatures = map[string]map[Feature]bool{
	models.PlanFree: {},
	models.PlanPremium: {
		FeatureUnlimitedHistory: true,
		FeatureAdvancedStats:    true,
		FeatureCustomThemes:     true,
	},
}

// PlanAllows reports whether a plan carries a feature. Unknown plan values
// degrade to the free tier.
func PlanAllows(plan string, feature Feature) bool {
	features, ok := planFeatures[plan]
	if !ok {
		features = planFeatures[models.PlanFree]
	}
	return features[feature]
}
