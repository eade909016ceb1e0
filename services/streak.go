// services/streak.go - daily streak bookkeeping
package services

import (
	"fmt"
	"time"

	"github.com/Gojer16/Elevare-sub001/models"
)

// Date is a calendar date already resolved in the owner's timezone.
// The zero value means "never active".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string as stored on task rows.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date at midnight UTC, the canonical form persisted on
// the user row. Which wall clock it carries is irrelevant; only the Y/M/D
// triple is ever read back.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the signed number of calendar days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.Time().Sub(o.Time()) / (24 * time.Hour))
}

// StreakState mirrors the streak columns on the user row.
type StreakState struct {
	Count          int
	Longest        int
	LastActiveDate Date
}

// UpdateStreak decides how a qualifying action on `today` affects the streak.
// Pure: no clock, no timezone math, no persistence. The caller resolves
// `today` in the user's timezone and writes the result back in the same
// transaction as the action itself.
//
// Policy:
//   - never active          -> count 1, start the streak today
//   - last active today     -> unchanged (one increment per calendar day)
//   - last active yesterday -> count+1
//   - gap of 2+ days        -> streak broken, count resets to 1
//   - last active in the future (clock skew or replayed call) -> unchanged;
//     state is never regressed
func UpdateStreak(prior StreakState, today Date) StreakState {
	next := prior

	if prior.LastActiveDate.IsZero() {
		next.Count = 1
		next.LastActiveDate = today
	} else {
		switch gap := today.DaysSince(prior.LastActiveDate); {
		case gap == 0:
			return prior
		case gap < 0:
			return prior
		case gap == 1:
			next.Count++
			next.LastActiveDate = today
		default:
			next.Count = 1
			next.LastActiveDate = today
		}
	}

	if next.Count > next.Longest {
		next.Longest = next.Count
	}
	return next
}

// StreakStateOf reads the streak columns off a user row.
func StreakStateOf(user *models.User) StreakState {
	state := StreakState{
		Count:   user.CurrentStreak,
		Longest: user.LongestStreak,
	}
	if user.LastActiveDate != nil {
		state.LastActiveDate = DateOf(*user.LastActiveDate)
	}
	return state
}

// ApplyStreak writes a streak state back onto a user row for the caller to
// persist.
func ApplyStreak(user *models.User, state StreakState) {
	user.CurrentStreak = state.Count
	user.LongestStreak = state.Longest
	if !state.LastActiveDate.IsZero() {
		t := state.LastActiveDate.Time()
		user.LastActiveDate = &t
	}
}
