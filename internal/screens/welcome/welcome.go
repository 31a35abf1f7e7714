package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/streak"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const rocketArt = `      /\
     /  \
    | 🪐 |
    |    |
   /| ++ |\
  /_|____|_\
     /\/\`

// sparkle frames cycle around the rocket
var sparkleFrames = []string{"★", "✦", "·"}

type tickMsg time.Time

// Greeting is the daily login state shown under the banner.
type Greeting struct {
	Streak streak.Record
	Award  *badges.Award // set when today's login earned the badge
}

// WelcomeScreen shows a splash animation and the login streak before
// handing over to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	greeting     Greeting
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen, greeting Greeting) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		greeting:    greeting,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips whatever is left of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(rocketArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "   " + lines[0] + "   " + s2
		}
		if len(lines) > 4 {
			lines[4] = s2 + " " + lines[4] + " " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			components.Banner(width, theme.Primary),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Blast off into addition!"),
			"",
			w.renderStreak(),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (w *WelcomeScreen) renderStreak() string {
	rec := w.greeting.Streak
	if rec.ConsecutiveDays == 0 {
		return ""
	}

	line := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("★ Day %d in a row", rec.ConsecutiveDays))

	var detail string
	switch {
	case w.greeting.Award != nil:
		detail = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("%s %s badge earned!", w.greeting.Award.Type.Icon(), w.greeting.Award.Type.DisplayName()))
	case rec.RemainingDays() > 0:
		detail = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d more days for the %s badge", rec.RemainingDays(), badges.ConsecutiveLogin.DisplayName()))
	}
	if detail == "" {
		return line
	}
	return line + "\n" + detail
}
