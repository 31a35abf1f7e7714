package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/layout"
	"github.com/abhisek/mathaxy/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	switch {
	case p.errMsg != "":
		return renderError(width, p.errMsg)
	case p.session == nil:
		return renderLoading(width)
	case p.phase == phaseQuitConfirm:
		return renderQuitConfirm(width)
	}
	return p.renderQuestionView(width)
}

// renderQuestionView renders the status line, countdown, question and input.
func (p *PlayScreen) renderQuestionView(width int) string {
	s := p.session
	cfg := s.Config()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	// Status line.
	shown := min(s.CurrentIndex+1, len(s.Questions))
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Level %d", s.Level))
	right := fmt.Sprintf("Q %d/%d  %s %d",
		shown, len(s.Questions),
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.CorrectCount,
	)
	if cfg.MaxErrors > 0 {
		right += fmt.Sprintf("  %s %d/%d",
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			s.ErrorCount, cfg.MaxErrors)
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	b.WriteString(center.Render(p.countdown(barWidth).View()))
	b.WriteString("\n")
	b.WriteString(center.Render(components.NewProgressBar("", s.Progress(), true, barWidth).View()))
	b.WriteString("\n\n")

	if p.phase == phaseFeedback {
		b.WriteString(p.renderFeedback(width))
		return b.String()
	}

	q, ok := s.Current()
	if !ok {
		return b.String()
	}
	b.WriteString(center.Render(theme.Question.Render(fmt.Sprintf("%d  +  %d  =", q.Addend1, q.Addend2))))
	b.WriteString("\n\n")
	b.WriteString(center.Render("Answer: " + p.input.View()))
	if p.wrong {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite, try again!"))
	}
	return b.String()
}

// countdown is the level clock in total-time mode and the question clock
// otherwise.
func (p *PlayScreen) countdown(width int) components.Countdown {
	cfg := p.session.Config()
	c := components.Countdown{Total: cfg.TimeLimit(), Width: width}
	if cfg.Mode == levels.ModePerQuestion {
		c.Remaining = cfg.TimeLimit()
		if p.phase == phaseAsking {
			c.Remaining = p.questionRemaining()
		}
		c.Label = layout.FormatSeconds(c.Remaining)
	} else {
		c.Remaining = p.levelRemaining()
		c.Label = layout.FormatClock(c.Remaining)
	}
	return c
}

// renderFeedback renders the flash shown between questions.
func (p *PlayScreen) renderFeedback(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch p.feedback {
	case feedbackTimeout:
		return center.Foreground(theme.Warning).Bold(true).Render(p.feedbackText)
	default:
		text := center.Foreground(theme.Success).Bold(true).Render("Correct! " + p.feedbackText)
		if p.skipped {
			text += "\n\n" + center.Foreground(theme.ArcadeYellow).Bold(true).
				Render("Lightning run! Skipping ahead...")
		}
		return text
	}
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End this level early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your answers so far are saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end level"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your questions...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
