package history

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

// Limit is the number of sessions listed.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Badges   map[string][]store.BadgeRecord // sessionID → badges
	Err      error
}

// HistoryScreen displays past levels and the badges they earned.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	badges    map[string][]store.BadgeRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.eventRepo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		all, err := s.eventRepo.QueryBadges(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Badges: map[string][]store.BadgeRecord{}}
		}
		bySession := make(map[string][]store.BadgeRecord)
		for _, b := range all {
			if b.SessionID != "" {
				bySession[b.SessionID] = append(bySession[b.SessionID], b)
			}
		}
		return historyLoadedMsg{Sessions: sessions, Badges: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Badges"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.badges = msg.Badges
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// outcome labels how a session ended.
func outcome(r store.SessionSummaryRecord) string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Completed && !r.Failed:
		return "cleared"
	case r.Failed:
		return "failed"
	default:
		return "quit"
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No levels played yet. Blast off!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		var accuracy float64
		if answered := sess.CorrectAnswers + sess.WrongAnswers; answered > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(answered) * 100
		}

		badgeStr := ""
		if n := len(s.badges[sess.SessionID]); n > 0 {
			badgeStr = fmt.Sprintf("  %d badge", n)
			if n > 1 {
				badgeStr += "s"
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  Level %-2d  %-7s  %d:%02d  %.0f%% accuracy%s",
			prefix, sess.Timestamp.Format("Jan 02, 2006"), sess.Level, outcome(sess),
			sess.DurationSecs/60, sess.DurationSecs%60, accuracy, badgeStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderBadges(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderBadges(sessionID string, width int) string {
	earned := s.badges[sessionID]
	if len(earned) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    No badges this level")) + "\n"
	}
	var b strings.Builder
	for _, rec := range earned {
		t := badges.Type(rec.BadgeType)
		line := fmt.Sprintf("    %s %s, %s", t.Icon(), t.DisplayName(), rec.Reason)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(components.BadgeColor(t)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
