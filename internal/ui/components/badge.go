package components

import (
	"image/color"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

// BadgeColor returns the theme color for a badge type.
func BadgeColor(t badges.Type) color.Color {
	switch t {
	case badges.SkipLevel:
		return theme.ArcadeYellow
	case badges.PerfectLevel:
		return theme.Primary
	case badges.ConsecutiveLogin:
		return theme.Accent
	default:
		return theme.Text
	}
}
