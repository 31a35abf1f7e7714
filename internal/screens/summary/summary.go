package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/layout"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

// Result is everything the summary shows about a finished level.
type Result struct {
	Summary       game.Summary
	Skipped       bool
	Awards        []badges.Award
	NewCharacters []badges.Character

	// Replay and Next build the screens for playing again. Next is nil on
	// the last level.
	Replay func() screen.Screen
	Next   func() screen.Screen
}

// SummaryScreen displays the outcome of a level.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return fmt.Sprintf("Level %d Summary", s.result.Summary.Level)
}

func (s *SummaryScreen) canAdvance() bool {
	return s.result.Next != nil && s.result.Summary.Passed()
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.result.Replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	if s.canAdvance() {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Next level"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		if s.result.Replay != nil {
			next := s.result.Replay()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "n", "N":
		if s.canAdvance() {
			next := s.result.Next()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

// headline is the title line and its color.
func (s *SummaryScreen) headline() (string, color.Color) {
	sum := s.result.Summary
	switch {
	case s.result.Skipped:
		return "Lightning run! Level skipped!", theme.ArcadeYellow
	case sum.Passed():
		return fmt.Sprintf("Level %d complete!", sum.Level), theme.Success
	case sum.Failed:
		return "Out of time or out of tries", theme.Error
	default:
		return "Level ended early", theme.TextDim
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.result.Summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title, fg := s.headline()
	b.WriteString(center.Foreground(fg).Bold(true).Render(title))
	b.WriteString("\n\n")

	card := fmt.Sprintf("Cleared: %d/%d    Correct: %d    Mistakes: %d\nAccuracy: %.0f%%    Time: %s    Avg: %s",
		sum.Cleared, sum.Questions, sum.Correct, sum.Errors, sum.Accuracy*100,
		layout.FormatClock(sum.Duration), layout.FormatSeconds(sum.Average))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(lipgloss.NewStyle().Foreground(theme.Text).Render(card), components.ContentWidth(width))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(s.result.Awards) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, a := range s.result.Awards {
			line := fmt.Sprintf("  %s %s, %s", a.Type.Icon(), a.Type.DisplayName(), a.Reason)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(components.BadgeColor(a.Type)).Render(line)))
			b.WriteString("\n")
		}
	}

	for _, c := range s.result.NewCharacters {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.ArcadePink).Bold(true).
			Render(fmt.Sprintf("New friend unlocked: %s!", c.DisplayName())))
		b.WriteString("\n")
	}

	return b.String()
}
