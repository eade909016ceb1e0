package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gojer16/Elevare-sub001/models"
)

func date(y int, m time.Month, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	today := date(2024, time.January, 10)

	got := UpdateStreak(StreakState{}, today)

	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 1, got.Longest)
	assert.Equal(t, today, got.LastActiveDate)
}

func TestUpdateStreakContinuation(t *testing.T) {
	prior := StreakState{Count: 5, Longest: 5, LastActiveDate: date(2024, time.January, 10)}

	got := UpdateStreak(prior, date(2024, time.January, 11))

	assert.Equal(t, 6, got.Count)
	assert.Equal(t, 6, got.Longest)
	assert.Equal(t, date(2024, time.January, 11), got.LastActiveDate)
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	prior := StreakState{Count: 5, Longest: 5, LastActiveDate: date(2024, time.January, 10)}
	today := date(2024, time.January, 10)

	first := UpdateStreak(prior, today)
	second := UpdateStreak(first, today)

	assert.Equal(t, prior, first)
	assert.Equal(t, first, second)
}

func TestUpdateStreakGapResets(t *testing.T) {
	prior := StreakState{Count: 5, Longest: 8, LastActiveDate: date(2024, time.January, 10)}

	got := UpdateStreak(prior, date(2024, time.January, 13))

	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 8, got.Longest, "longest survives a broken streak")
	assert.Equal(t, date(2024, time.January, 13), got.LastActiveDate)
}

func TestUpdateStreakTwoDayGapResets(t *testing.T) {
	prior := StreakState{Count: 3, Longest: 3, LastActiveDate: date(2024, time.January, 10)}

	got := UpdateStreak(prior, date(2024, time.January, 12))

	assert.Equal(t, 1, got.Count)
}

func TestUpdateStreakFutureLastActiveIsNoOp(t *testing.T) {
	prior := StreakState{Count: 4, Longest: 6, LastActiveDate: date(2024, time.January, 15)}

	got := UpdateStreak(prior, date(2024, time.January, 10))

	assert.Equal(t, prior, got, "state is never regressed on out-of-order calls")
}

func TestUpdateStreakCrossesMonthBoundary(t *testing.T) {
	prior := StreakState{Count: 2, Longest: 2, LastActiveDate: date(2024, time.January, 31)}

	got := UpdateStreak(prior, date(2024, time.February, 1))

	assert.Equal(t, 3, got.Count)
}

func TestUpdateStreakLongestMonotone(t *testing.T) {
	days := []int{1, 2, 3, 4, 8, 9, 10, 20, 21, 22, 23, 24}

	state := StreakState{}
	prevLongest := 0
	for _, day := range days {
		state = UpdateStreak(state, date(2024, time.March, day))
		assert.GreaterOrEqual(t, state.Longest, prevLongest, "longest never decreases")
		assert.GreaterOrEqual(t, state.Longest, state.Count, "longest >= count")
		prevLongest = state.Longest
	}

	// Longest run above is 20..24
	assert.Equal(t, 5, state.Count)
	assert.Equal(t, 5, state.Longest)
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 10), d)
	assert.Equal(t, "2024-01-10", d.String())
}

func TestDateDaysSince(t *testing.T) {
	a := date(2024, time.January, 10)

	assert.Equal(t, 0, a.DaysSince(a))
	assert.Equal(t, 1, date(2024, time.January, 11).DaysSince(a))
	assert.Equal(t, -1, date(2024, time.January, 9).DaysSince(a))
	assert.Equal(t, 31, date(2024, time.February, 10).DaysSince(a))
}

func TestDateAddDays(t *testing.T) {
	assert.Equal(t, date(2024, time.March, 1), date(2024, time.February, 29).AddDays(1))
	assert.Equal(t, date(2023, time.December, 31), date(2024, time.January, 1).AddDays(-1))
}

func TestStreakStateRoundTripThroughUser(t *testing.T) {
	user := &models.User{}

	state := UpdateStreak(StreakStateOf(user), date(2024, time.May, 2))
	ApplyStreak(user, state)

	assert.Equal(t, 1, user.CurrentStreak)
	assert.Equal(t, 1, user.LongestStreak)
	require.NotNil(t, user.LastActiveDate)
	assert.Equal(t, date(2024, time.May, 2), DateOf(*user.LastActiveDate))

	// Next day continues off the persisted row
	state = UpdateStreak(StreakStateOf(user), date(2024, time.May, 3))
	ApplyStreak(user, state)

	assert.Equal(t, 2, user.CurrentStreak)
}
