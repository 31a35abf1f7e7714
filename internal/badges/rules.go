package badges

import (
	"fmt"
	"time"

	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/streak"
)

const (
	// FastAccuracy and FastAverage earn SkipLevel on a cleared level even
	// without a detected fast run.
	FastAccuracy = 0.9
	FastAverage  = 5 * time.Second
)

// Key identifies an owned badge. Level is zero for one-off badges.
type Key struct {
	Type  Type
	Level int
}

// KeyFor returns the ownership key of t earned on level.
func KeyFor(t Type, level int) Key {
	if !t.PerLevel() {
		level = 0
	}
	return Key{Type: t, Level: level}
}

// Owned is the set of badges already earned.
type Owned map[Key]bool

// Has reports whether t on level is owned.
func (o Owned) Has(t Type, level int) bool {
	return o[KeyFor(t, level)]
}

// Award is a badge earned by a session.
type Award struct {
	Type      Type
	Level     int
	SessionID string
	Reason    string
	AwardedAt time.Time
}

// Evaluate returns the badges sum earns that are not already owned.
// skipped marks a detected fast run; loginStreak is the current
// consecutive-day count.
func Evaluate(sum game.Summary, skipped bool, loginStreak int, owned Owned) []Award {
	var out []Award
	add := func(t Type, reason string) {
		if owned.Has(t, sum.Level) {
			return
		}
		out = append(out, Award{Type: t, Level: sum.Level, SessionID: sum.SessionID, Reason: reason})
	}

	passed := sum.Passed()
	if passed {
		add(LevelComplete, fmt.Sprintf("Cleared level %d", sum.Level))
	}
	if passed && sum.Errors == 0 {
		add(PerfectLevel, fmt.Sprintf("Level %d without a mistake", sum.Level))
	}
	switch {
	case skipped:
		add(SkipLevel, fmt.Sprintf("Fast run on level %d", sum.Level))
	case passed && sum.Accuracy >= FastAccuracy && sum.Average < FastAverage:
		add(SkipLevel, fmt.Sprintf("%.0f%% at %.1fs per answer", sum.Accuracy*100, sum.Average.Seconds()))
	}
	if loginStreak >= streak.BadgeDays {
		add(ConsecutiveLogin, fmt.Sprintf("%d days in a row", loginStreak))
	}
	return out
}
