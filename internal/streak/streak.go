// Package streak tracks consecutive-day logins.
package streak

import (
	"math"
	"time"
)

// BadgeDays is the streak length that earns the consecutive-login badge.
const BadgeDays = 7

// Record is the login streak state.
type Record struct {
	LastLogin       time.Time
	ConsecutiveDays int
	EarnedBadge     bool
}

// Update applies a login at now. A second login on the same calendar day
// changes nothing, the next day extends the streak and a longer gap restarts
// it at 1. The bool is true only on the login that first reaches BadgeDays.
func Update(rec Record, now time.Time) (Record, bool) {
	today := startOfDay(now)
	if rec.LastLogin.IsZero() {
		rec.LastLogin = today
		rec.ConsecutiveDays = 1
		return rec, false
	}

	switch daysBetween(startOfDay(rec.LastLogin), today) {
	case 0:
		return rec, false
	case 1:
		rec.ConsecutiveDays++
	default:
		rec.ConsecutiveDays = 1
	}
	rec.LastLogin = today

	if rec.ConsecutiveDays >= BadgeDays && !rec.EarnedBadge {
		rec.EarnedBadge = true
		return rec, true
	}
	return rec, false
}

// NeedsLogin reports whether no login has been recorded for now's day.
func (r Record) NeedsLogin(now time.Time) bool {
	if r.LastLogin.IsZero() {
		return true
	}
	return daysBetween(startOfDay(r.LastLogin), startOfDay(now)) != 0
}

// RemainingDays is how many more consecutive days earn the badge.
func (r Record) RemainingDays() int {
	return max(BadgeDays-r.ConsecutiveDays, 0)
}

// Progress is the streak toward the badge, in [0, 1].
func (r Record) Progress() float64 {
	return math.Min(float64(r.ConsecutiveDays)/BadgeDays, 1)
}

// FromDays replays distinct login days in ascending order.
func FromDays(days []time.Time) Record {
	var rec Record
	for _, d := range days {
		rec, _ = Update(rec, d)
	}
	return rec
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Rounding absorbs DST shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
