package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gojer16/Elevare-sub001/models"
)

func testCatalog() []models.Achievement {
	codes := []struct {
		code     string
		category string
	}{
		{CodeFirstTask, models.CategoryTask},
		{CodeTasks10, models.CategoryTask},
		{CodeTasks100, models.CategoryTask},
		{CodeStreak3, models.CategoryStreak},
		{CodeStreak7, models.CategoryStreak},
		{CodeStreak30, models.CategoryStreak},
		{CodeFirstReflection, models.CategoryReflection},
		{CodeReflections10, models.CategoryReflection},
		{CodeReflections100, models.CategoryReflection},
		{CodeNightOwl, models.CategoryOther},
		{CodeEarlyBird, models.CategoryOther},
	}

	catalog := make([]models.Achievement, len(codes))
	for i, c := range codes {
		catalog[i] = models.Achievement{
			ID:       uint(i + 1),
			Code:     c.code,
			Title:    c.code,
			Category: c.category,
		}
	}
	return catalog
}

func unlockCodes(unlocks []Unlock) []string {
	codes := make([]string, len(unlocks))
	for i, u := range unlocks {
		codes[i] = u.Achievement.Code
	}
	return codes
}

func TestEvaluateFirstTask(t *testing.T) {
	ctx := EvaluationContext{TasksCompleted: 1, StreakCount: 1}

	unlocks := EvaluateAchievements(testCatalog(), ctx, nil, time.Now())

	assert.Equal(t, []string{CodeFirstTask}, unlockCodes(unlocks))
}

func TestEvaluateThresholdExactness(t *testing.T) {
	already := map[string]bool{CodeFirstTask: true}

	below := EvaluationContext{TasksCompleted: 9}
	assert.Empty(t, unlockCodes(EvaluateAchievements(testCatalog(), below, already, time.Now())))

	at := EvaluationContext{TasksCompleted: 10}
	assert.Equal(t, []string{CodeTasks10}, unlockCodes(EvaluateAchievements(testCatalog(), at, already, time.Now())))
}

func TestEvaluateStreakThresholds(t *testing.T) {
	already := map[string]bool{CodeFirstTask: true, CodeTasks10: true}

	ctx := EvaluationContext{TasksCompleted: 10, StreakCount: 7}
	codes := unlockCodes(EvaluateAchievements(testCatalog(), ctx, already, time.Now()))

	// 3 and 7 both satisfied, catalog order preserved
	assert.Equal(t, []string{CodeStreak3, CodeStreak7}, codes)
}

func TestEvaluateNightOwlBoundaries(t *testing.T) {
	cases := []struct {
		tod      TimeOfDay
		nightOwl bool
	}{
		{TimeOfDay{Hour: 0, Minute: 0}, true},
		{TimeOfDay{Hour: 4, Minute: 59}, true},
		{TimeOfDay{Hour: 5, Minute: 0}, false},
		{TimeOfDay{Hour: 23, Minute: 59}, false},
	}

	for _, tc := range cases {
		tod := tc.tod
		ctx := EvaluationContext{LatestCompletionLocalTime: &tod}
		codes := unlockCodes(EvaluateAchievements(testCatalog(), ctx, nil, time.Now()))
		assert.Equal(t, tc.nightOwl, contains(codes, CodeNightOwl), "time %02d:%02d", tod.Hour, tod.Minute)
	}
}

func TestEvaluateEarlyBirdBoundaries(t *testing.T) {
	cases := []struct {
		tod       TimeOfDay
		earlyBird bool
	}{
		{TimeOfDay{Hour: 6, Minute: 59}, true},
		{TimeOfDay{Hour: 7, Minute: 0}, false},
		{TimeOfDay{Hour: 0, Minute: 0}, true},
	}

	for _, tc := range cases {
		tod := tc.tod
		ctx := EvaluationContext{LatestCompletionLocalTime: &tod}
		codes := unlockCodes(EvaluateAchievements(testCatalog(), ctx, nil, time.Now()))
		assert.Equal(t, tc.earlyBird, contains(codes, CodeEarlyBird), "time %02d:%02d", tod.Hour, tod.Minute)
	}
}

func TestEvaluateNoCompletionTimeSkipsTimeRules(t *testing.T) {
	ctx := EvaluationContext{TasksCompleted: 0}

	unlocks := EvaluateAchievements(testCatalog(), ctx, nil, time.Now())

	assert.Empty(t, unlocks)
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	ctx := EvaluationContext{TasksCompleted: 15, StreakCount: 3}
	already := map[string]bool{CodeFirstTask: true, CodeTasks10: true, CodeStreak3: true}

	unlocks := EvaluateAchievements(testCatalog(), ctx, already, time.Now())

	assert.Empty(t, unlocks)
}

func TestEvaluateSkipsUnknownCodes(t *testing.T) {
	catalog := append(testCatalog(), models.Achievement{ID: 99, Code: "retired_rule"})
	ctx := EvaluationContext{TasksCompleted: 1}

	unlocks := EvaluateAchievements(catalog, ctx, nil, time.Now())

	assert.Equal(t, []string{CodeFirstTask}, unlockCodes(unlocks))
}

func TestEvaluateDuplicateCatalogRowEmittedOnce(t *testing.T) {
	catalog := testCatalog()
	catalog = append(catalog, catalog[0]) // duplicated first_task row

	ctx := EvaluationContext{TasksCompleted: 1}
	unlocks := EvaluateAchievements(catalog, ctx, nil, time.Now())

	assert.Equal(t, []string{CodeFirstTask}, unlockCodes(unlocks))
}

func TestEvaluateAtMostOnceAcrossSequence(t *testing.T) {
	catalog := testCatalog()
	already := map[string]bool{}
	seen := map[string]int{}

	// A user completing tasks day after day, feeding each persisted batch
	// back into alreadyUnlocked.
	for day := 1; day <= 40; day++ {
		ctx := EvaluationContext{
			TasksCompleted:     day,
			ReflectionsWritten: day / 2,
			StreakCount:        day,
		}
		for _, u := range EvaluateAchievements(catalog, ctx, already, time.Now()) {
			seen[u.Achievement.Code]++
			already[u.Achievement.Code] = true
		}
	}

	for code, count := range seen {
		assert.Equal(t, 1, count, "code %s unlocked more than once", code)
	}
	assert.Contains(t, seen, CodeTasks10)
	assert.Contains(t, seen, CodeStreak30)
	assert.Contains(t, seen, CodeReflections10)
}

func TestProgressProjection(t *testing.T) {
	catalog := testCatalog()
	unlockedAt := map[string]time.Time{
		CodeFirstTask: time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC),
		CodeNightOwl:  time.Date(2024, time.January, 6, 2, 30, 0, 0, time.UTC),
	}
	ctx := EvaluationContext{TasksCompleted: 4, ReflectionsWritten: 2, StreakCount: 4}

	progress := AchievementProgressFor(catalog, ctx, unlockedAt)
	require.Len(t, progress, len(catalog))

	byCode := make(map[string]AchievementProgress, len(progress))
	for _, p := range progress {
		byCode[p.Code] = p
	}

	first := byCode[CodeFirstTask]
	assert.True(t, first.Unlocked)
	require.NotNil(t, first.Target)
	assert.Equal(t, 1, *first.Target)
	assert.Equal(t, 4, first.Current)
	require.NotNil(t, first.UnlockedAt)

	tasks10 := byCode[CodeTasks10]
	assert.False(t, tasks10.Unlocked)
	require.NotNil(t, tasks10.Target)
	assert.Equal(t, 10, *tasks10.Target)
	assert.Equal(t, 4, tasks10.Current)

	nightOwl := byCode[CodeNightOwl]
	assert.True(t, nightOwl.Unlocked)
	assert.Nil(t, nightOwl.Target)
	assert.Equal(t, 1, nightOwl.Current, "non-numeric rules snap to done once unlocked")

	earlyBird := byCode[CodeEarlyBird]
	assert.False(t, earlyBird.Unlocked)
	assert.Nil(t, earlyBird.Target)
	assert.Equal(t, 0, earlyBird.Current)
	assert.NotEmpty(t, earlyBird.ConditionText)
}

func TestCatalogTarget(t *testing.T) {
	target, ok := CatalogTarget(CodeTasks100)
	require.True(t, ok)
	assert.Equal(t, 100, target)

	_, ok = CatalogTarget(CodeNightOwl)
	assert.False(t, ok)

	_, ok = CatalogTarget("no_such_code")
	assert.False(t, ok)
}

func TestTimeOfDayOf(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 08:30 UTC is 03:30 in New York (EST) - inside the night owl window
	utc := time.Date(2024, time.January, 10, 8, 30, 0, 0, time.UTC)
	tod := TimeOfDayOf(utc.In(loc))

	assert.Equal(t, 3, tod.Hour)
	assert.Equal(t, 30, tod.Minute)
}

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
