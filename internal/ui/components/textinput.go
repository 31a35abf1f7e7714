package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathaxy/internal/ui/theme"
)

// AnswerDigits is the widest answer a single-digit sum can have (9+9).
const AnswerDigits = 2

// AnswerInput is the numeric entry box for a sum. Non-digit keys are
// dropped and at most AnswerDigits digits are accepted.
type AnswerInput struct {
	Model textinput.Model
	wrong bool // last submission was wrong, shown until the next keystroke
}

// NewAnswerInput creates a focused answer box.
func NewAnswerInput() AnswerInput {
	ti := textinput.New()
	ti.Placeholder = "?"
	ti.CharLimit = AnswerDigits
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init focuses the box.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 {
			if key[0] < '0' || key[0] > '9' {
				return a, nil
			}
			a.wrong = false
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the box, with a cross after a wrong answer.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.wrong {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Answer parses the typed digits. ok is false for an empty box.
func (a AnswerInput) Answer() (n int, ok bool) {
	s := strings.TrimSpace(a.Model.Value())
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// MarkWrong clears the box and flags the wrong answer.
func (a *AnswerInput) MarkWrong() {
	a.Model.SetValue("")
	a.wrong = true
}

// Reset clears the value and the wrong mark for the next question.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
	a.wrong = false
}
