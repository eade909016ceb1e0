// services/achievements.go - achievement rule table and evaluator
package services

import (
	"time"

	"github.com/Gojer16/Elevare-sub001/models"
)

// Achievement codes. Stable keys: the catalog rows in the database reference
// these, and unlock records survive catalog edits.
const (
	CodeFirstTask       = "first_task"
	CodeTasks10         = "tasks_10"
	CodeTasks100        = "tasks_100"
	CodeFirstReflection = "first_reflection"
	CodeReflections10   = "reflections_10"
	CodeReflections100  = "reflections_100"
	CodeStreak3         = "streak_3"
	CodeStreak7         = "streak_7"
	CodeStreak30        = "streak_30"
	CodeNightOwl        = "night_owl"
	CodeEarlyBird       = "early_bird"
)

// TimeOfDay is a wall-clock time already adjusted to the user's timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// EvaluationContext is the snapshot of a user's aggregate counters the rules
// are checked against. Not persisted; rebuilt by the caller per evaluation.
type EvaluationContext struct {
	TasksCompleted            int
	ReflectionsWritten        int
	StreakCount               int
	LatestCompletionLocalTime *TimeOfDay
}

// rule binds an achievement code to its predicate and display metadata.
// Target is nil for rules without a numeric counter (the time-of-day ones).
type rule struct {
	target        int
	hasTarget     bool
	conditionText string
	satisfied     func(EvaluationContext) bool
	current       func(EvaluationContext) int
}

func countRule(target int, text string, counter func(EvaluationContext) int) rule {
	return rule{
		target:        target,
		hasTarget:     true,
		conditionText: text,
		satisfied:     func(ctx EvaluationContext) bool { return counter(ctx) >= target },
		current:       counter,
	}
}

func tasksCompleted(ctx EvaluationContext) int     { return ctx.TasksCompleted }
func reflectionsWritten(ctx EvaluationContext) int { return ctx.ReflectionsWritten }
func streakCount(ctx EvaluationContext) int        { return ctx.StreakCount }

// ruleTable maps codes to rules. Catalog rows whose code is missing here are
// skipped during evaluation, so removing an entry retires a rule without any
// data migration.
var ruleTable = map[string]rule{
	CodeFirstTask: countRule(1, "Complete your first task", tasksCompleted),
	CodeTasks10:   countRule(10, "Complete 10 tasks", tasksCompleted),
	CodeTasks100:  countRule(100, "Complete 100 tasks", tasksCompleted),

	CodeFirstReflection: countRule(1, "Write your first reflection", reflectionsWritten),
	CodeReflections10:   countRule(10, "Write 10 reflections", reflectionsWritten),
	CodeReflections100:  countRule(100, "Write 100 reflections", reflectionsWritten),

	CodeStreak3:  countRule(3, "Reach a 3-day streak", streakCount),
	CodeStreak7:  countRule(7, "Reach a 7-day streak", streakCount),
	CodeStreak30: countRule(30, "Reach a 30-day streak", streakCount),

	CodeNightOwl: {
		conditionText: "Complete a task between midnight and 5 AM",
		satisfied: func(ctx EvaluationContext) bool {
			t := ctx.LatestCompletionLocalTime
			return t != nil && t.Hour < 5
		},
	},
	CodeEarlyBird: {
		conditionText: "Complete a task before 7 AM",
		satisfied: func(ctx EvaluationContext) bool {
			t := ctx.LatestCompletionLocalTime
			return t != nil && t.Hour < 7
		},
	},
}

// Unlock is a newly satisfied achievement, paired with its catalog row for
// the notification payload.
type Unlock struct {
	Achievement models.Achievement `json:"achievement"`
	UnlockedAt  time.Time          `json:"unlocked_at"`
}

// EvaluateAchievements walks the catalog in order and returns the achievements
// whose rule just became satisfied. Codes in alreadyUnlocked are never
// re-evaluated, and no code is emitted twice within one call, so feeding the
// result back into alreadyUnlocked after each persisted batch keeps unlocks
// at-most-once across any call sequence. Unknown codes (catalog drift) are
// skipped.
func EvaluateAchievements(catalog []models.Achievement, ctx EvaluationContext, alreadyUnlocked map[string]bool, now time.Time) []Unlock {
	unlocks := []Unlock{}
	seen := make(map[string]bool, len(catalog))

	for _, def := range catalog {
		if alreadyUnlocked[def.Code] || seen[def.Code] {
			continue
		}

		r, ok := ruleTable[def.Code]
		if !ok {
			continue
		}

		if r.satisfied(ctx) {
			seen[def.Code] = true
			unlocks = append(unlocks, Unlock{Achievement: def, UnlockedAt: now})
		}
	}

	return unlocks
}

// AchievementProgress is the read-path projection for one catalog entry.
type AchievementProgress struct {
	Code          string     `json:"code"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Icon          string     `json:"icon"`
	Category      string     `json:"category"`
	Current       int        `json:"current"`
	Target        *int       `json:"target"`
	Unlocked      bool       `json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	ConditionText string     `json:"condition_text"`
}

// AchievementProgressFor projects display progress for every catalog entry
// without mutating anything. Rules without a numeric target report current 0
// until unlocked and 1 afterwards, purely so clients can render 100%.
func AchievementProgressFor(catalog []models.Achievement, ctx EvaluationContext, unlockedAt map[string]time.Time) []AchievementProgress {
	progress := make([]AchievementProgress, 0, len(catalog))

	for _, def := range catalog {
		entry := AchievementProgress{
			Code:        def.Code,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
		}

		if at, ok := unlockedAt[def.Code]; ok {
			t := at
			entry.Unlocked = true
			entry.UnlockedAt = &t
		}

		if r, ok := ruleTable[def.Code]; ok {
			entry.ConditionText = r.conditionText
			if r.hasTarget {
				target := r.target
				entry.Target = &target
				entry.Current = r.current(ctx)
			} else if entry.Unlocked {
				entry.Current = 1
			}
		}

		progress = append(progress, entry)
	}

	return progress
}

// CatalogTarget exposes the numeric target for a code, if it has one.
func CatalogTarget(code string) (int, bool) {
	r, ok := ruleTable[code]
	if !ok || !r.hasTarget {
		return 0, false
	}
	return r.target, true
}

// KnownCode reports whether a code has a rule bound to it.
func KnownCode(code string) bool {
	_, ok := ruleTable[code]
	return ok
}
