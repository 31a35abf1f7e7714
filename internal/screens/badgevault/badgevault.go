package badgevault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/store"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/layout"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

type badgesLoadedMsg struct {
	Records []store.BadgeRecord
	Err     error
}

// BadgeVaultScreen displays the player's badge collection and characters.
type BadgeVaultScreen struct {
	eventRepo    store.EventRepo
	all          []store.BadgeRecord
	selectedType int // index into badges.AllTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgeVaultScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeVaultScreen)(nil)

// New creates a new BadgeVaultScreen.
func New(eventRepo store.EventRepo) *BadgeVaultScreen {
	return &BadgeVaultScreen{
		eventRepo: eventRepo,
	}
}

func (s *BadgeVaultScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.eventRepo.QueryBadges(context.Background(), store.QueryOpts{})
		return badgesLoadedMsg{Records: records, Err: err}
	}
}

func (s *BadgeVaultScreen) Title() string {
	return "Badges"
}

func (s *BadgeVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		types := badges.AllTypes()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeVaultScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading badges...")
	}

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf("\nTotal: %d badges\n", len(s.all))))
	b.WriteString("\n")
	b.WriteString(s.renderCharacters(width))
	b.WriteString("\n\n")

	types := badges.AllTypes()
	tabs := make([]string, len(types))
	for i, t := range types {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		if i == s.selectedType {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n")

	selected := types[s.selectedType]
	b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(selected.Description()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No badges of this type yet"))
		return b.String()
	}

	maxVisible := max(height-14, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	style := lipgloss.NewStyle().Foreground(components.BadgeColor(selected))
	for _, rec := range filtered[start:end] {
		where := "         "
		if rec.Level > 0 {
			where = fmt.Sprintf("Level %-3d", rec.Level)
		}
		line := fmt.Sprintf("  %s  %-36s %s", where, rec.Reason, rec.Timestamp.Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

// renderCharacters lists unlocked characters and progress to the next one.
func (s *BadgeVaultScreen) renderCharacters(width int) string {
	total := len(s.all)
	var parts []string
	for _, c := range badges.AllCharacters() {
		if total >= c.Threshold() {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadePink).Bold(true).Render("✓ "+c.DisplayName()))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("🔒 %s (%d badges)", c.DisplayName(), c.Threshold())))
		}
	}
	line := strings.Join(parts, "    ")
	if next, needed, ok := badges.NextCharacter(total); ok {
		line += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d more to unlock %s", needed, next.DisplayName()))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *BadgeVaultScreen) filtered() []store.BadgeRecord {
	selected := string(badges.AllTypes()[s.selectedType])
	var out []store.BadgeRecord
	for _, r := range s.all {
		if r.BadgeType == selected {
			out = append(out, r)
		}
	}
	return out
}

func (s *BadgeVaultScreen) countByType(t badges.Type) int {
	n := 0
	for _, r := range s.all {
		if r.BadgeType == string(t) {
			n++
		}
	}
	return n
}
