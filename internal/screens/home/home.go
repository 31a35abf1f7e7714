package home

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/screens/badgevault"
	"github.com/abhisek/mathaxy/internal/screens/history"
	"github.com/abhisek/mathaxy/internal/screens/play"
	"github.com/abhisek/mathaxy/internal/streak"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/layout"
)

const (
	itemPlay = iota
	itemBadges
	itemHistory
	itemExit
)

// stats is the dashboard state read from the event log.
type stats struct {
	completed  []int
	badges     int
	streakDays int
	characters []badges.Character
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main menu: pick a level, browse badges or history.
type HomeScreen struct {
	deps   play.Deps
	menu   components.Menu
	level  int
	picked bool // the player moved the level cursor
	stats  stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps play.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, level: 1}

	items := []components.MenuItem{
		{Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(h.deps, h.level)}
			}
		}, Adjust: h.shiftLevel},
		{Label: "BADGES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: badgevault.New(h.deps.Repo)}
			}
		}, Disabled: deps.Repo == nil},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.Repo)}
			}
		}, Disabled: deps.Repo == nil},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the dashboard when a level or sub-screen pops back here.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Repo
	svc := h.deps.Badges
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var st stats
		st.completed, _ = repo.CompletedLevels(ctx)
		if days, err := repo.LoginDays(ctx); err == nil {
			st.streakDays = streak.FromDays(days).ConsecutiveDays
		}
		if svc != nil {
			_, st.badges = svc.Counts(ctx)
			st.characters = badges.UnlockedCharacters(st.badges)
		}
		return statsLoadedMsg{stats: st}
	}
}

// nextLevel is the lowest level not yet completed, or the last level once
// all are done.
func nextLevel(completed []int) int {
	for l := 1; l <= levels.TotalLevels; l++ {
		if !slices.Contains(completed, l) {
			return l
		}
	}
	return levels.TotalLevels
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Level"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.stats
		if !h.picked {
			h.level = nextLevel(h.stats.completed)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// shiftLevel moves the level cursor within [1, TotalLevels].
func (h *HomeScreen) shiftLevel(delta int) {
	next := h.level + delta
	if !levels.Valid(next) {
		return
	}
	h.level = next
	h.picked = true
}

func (h *HomeScreen) labels() []string {
	out := h.menu.Labels()
	out[itemPlay] = fmt.Sprintf("◂ PLAY LEVEL %d ▸", h.level)
	return out
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100
	tiny := termHeight < 22

	cw := components.ContentWidth(width)
	labels := h.labels()
	done := slices.Contains(h.stats.completed, h.level)

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderMascotBox(variantFor(h.stats.characters), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, renderLevelInfo(h.level, done, cw))
	if tiny {
		sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
