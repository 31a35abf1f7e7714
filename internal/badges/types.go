package badges

// Type identifies a badge.
type Type string

const (
	LevelComplete    Type = "level_complete"
	SkipLevel        Type = "skip_level"
	PerfectLevel     Type = "perfect_level"
	ConsecutiveLogin Type = "consecutive_login"
)

// AllTypes returns all badge types in display order.
func AllTypes() []Type {
	return []Type{LevelComplete, SkipLevel, PerfectLevel, ConsecutiveLogin}
}

// DisplayName returns a human-readable label for the badge type.
func (t Type) DisplayName() string {
	switch t {
	case LevelComplete:
		return "Addition Warrior"
	case SkipLevel:
		return "Speed Star"
	case PerfectLevel:
		return "Answer Genius"
	case ConsecutiveLogin:
		return "Steady Explorer"
	default:
		return string(t)
	}
}

// Description says how the badge is earned.
func (t Type) Description() string {
	switch t {
	case LevelComplete:
		return "Clear a level"
	case SkipLevel:
		return "Answer 10 in a row quickly and correctly"
	case PerfectLevel:
		return "Clear a level without a single mistake"
	case ConsecutiveLogin:
		return "Play 7 days in a row"
	default:
		return ""
	}
}

// Icon returns the display icon for the badge type.
func (t Type) Icon() string {
	switch t {
	case LevelComplete:
		return "🏆"
	case SkipLevel:
		return "⚡"
	case PerfectLevel:
		return "⭐"
	case ConsecutiveLogin:
		return "🔥"
	default:
		return "✦"
	}
}

// PerLevel reports whether the badge can be earned once per level rather
// than once overall.
func (t Type) PerLevel() bool {
	return t == LevelComplete
}
