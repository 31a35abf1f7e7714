package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotAstronaut MascotVariant = iota // before any character unlocks
	MascotPanda
	MascotRabbit
)

const mascotAstronaut = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +=? │
└─────┘`

const mascotPanda = `(●)___(●)
 / ●   ● \
|    ▼    |
 \  \_/  /
  ‾‾‾‾‾‾‾`

const mascotRabbit = `  (\ /)
  ( ·.·)
 c(")(")`

// variantFor picks the mascot of the most recently unlocked character.
func variantFor(unlocked []badges.Character) MascotVariant {
	if len(unlocked) == 0 {
		return MascotAstronaut
	}
	switch unlocked[len(unlocked)-1] {
	case badges.Rabbit:
		return MascotRabbit
	case badges.Panda:
		return MascotPanda
	}
	return MascotAstronaut
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotAstronaut
	fg := theme.Primary

	switch v {
	case MascotPanda:
		art = mascotPanda
		fg = theme.Text
	case MascotRabbit:
		art = mascotRabbit
		fg = theme.ArcadePink
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
