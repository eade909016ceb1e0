package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gojer16/Elevare-sub001/models"
)

func TestPlanAllows(t *testing.T) {
	assert.False(t, PlanAllows(models.PlanFree, FeatureUnlimitedHistory))
	assert.False(t, PlanAllows(models.PlanFree, FeatureAdvancedStats))

	assert.True(t, PlanAllows(models.PlanPremium, FeatureUnlimitedHistory))
	assert.True(t, PlanAllows(models.PlanPremium, FeatureAdvancedStats))
	assert.True(t, PlanAllows(models.PlanPremium, FeatureCustomThemes))
}

func TestPlanAllowsUnknownPlanDegradesToFree(t *testing.T) {
	assert.False(t, PlanAllows("enterprise", FeatureUnlimitedHistory))
	assert.False(t, PlanAllows("", FeatureAdvancedStats))
}
