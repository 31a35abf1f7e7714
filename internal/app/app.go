// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/screens/home"
	"github.com/abhisek/mathaxy/internal/screens/play"
	"github.com/abhisek/mathaxy/internal/screens/welcome"
	"github.com/abhisek/mathaxy/internal/streak"
	"github.com/abhisek/mathaxy/internal/ui/layout"
)

// Options configures the terminal app.
type Options struct {
	Deps     play.Deps
	Greeting welcome.Greeting

	// StartLevel skips the welcome screen and opens this level on top of
	// home. Zero shows the welcome screen.
	StartLevel int
}

type headerStatsMsg struct {
	stats layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the welcome screen, or at
// home when a start level is given.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(opts.Deps) }

	var root screen.Screen
	if levels.Valid(opts.StartLevel) {
		root = homeFactory()
	} else {
		root = welcome.New(homeFactory, opts.Greeting)
	}
	return AppModel{
		router: router.New(root),
		opts:   opts,
		stats:  layout.HeaderStats{StreakDays: opts.Greeting.Streak.ConsecutiveDays},
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.refreshStats()}
	if levels.Valid(m.opts.StartLevel) {
		level := play.New(m.opts.Deps, m.opts.StartLevel)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: level} })
	}
	return tea.Batch(cmds...)
}

// refreshStats reads the header counters from the event log.
func (m AppModel) refreshStats() tea.Cmd {
	repo := m.opts.Deps.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var st layout.HeaderStats
		if _, total, err := repo.BadgeCounts(ctx); err == nil {
			st.Badges = total
		}
		if days, err := repo.LoginDays(ctx); err == nil {
			st.StreakDays = streak.FromDays(days).ConsecutiveDays
		}
		return headerStatsMsg{stats: st}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.stats = msg.stats
		return m, nil

	case tea.KeyMsg:
		// Screens own esc so a level can confirm before quitting.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopToRootMsg, router.ReplaceScreenMsg:
		// A level just ended or the welcome screen handed over.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.refreshStats())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, hp.KeyHints()...)
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
