package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func testResult(passed bool) Result {
	return Result{
		Summary: game.Summary{
			Level:     7,
			Questions: 20,
			Cleared:   20,
			Correct:   20,
			Errors:    2,
			Accuracy:  20.0 / 22,
			Average:   2 * time.Second,
			Duration:  44 * time.Second,
			Completed: passed,
			Failed:    !passed,
		},
		Awards: []badges.Award{
			{Type: badges.LevelComplete, Level: 7, Reason: "Cleared level 7"},
		},
		NewCharacters: []badges.Character{badges.Panda},
		Replay:        func() screen.Screen { return &stubScreen{title: "replay"} },
		Next:          func() screen.Screen { return &stubScreen{title: "next"} },
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(true))
	if s.Title() != "Level 7 Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Level 7 Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult(true)).View(100, 30)
	for _, want := range []string{"Level 7 complete!", "Cleared: 20/20", "Addition Warrior", "Galaxy Panda"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in summary view", want)
		}
	}

	failed := New(testResult(false)).View(100, 30)
	if !strings.Contains(failed, "out of tries") {
		t.Error("expected failure headline")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult(true))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg on Enter")
	}
}

func TestSummaryScreen_Replay(t *testing.T) {
	s := New(testResult(false))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen.Title() != "replay" {
		t.Errorf("expected replace with replay screen, got %#v", msg)
	}
}

func TestSummaryScreen_NextRequiresPass(t *testing.T) {
	_, cmd := New(testResult(false)).Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if cmd != nil {
		t.Error("next level should be locked after a failed run")
	}

	_, cmd = New(testResult(true)).Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if cmd == nil {
		t.Fatal("expected a command on N after a pass")
	}
	if msg, ok := cmd().(router.ReplaceScreenMsg); !ok || msg.Screen.Title() != "next" {
		t.Error("expected replace with next level screen")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if got := len(New(testResult(true)).KeyHints()); got != 3 {
		t.Errorf("KeyHints length = %d, want 3", got)
	}
	if got := len(New(testResult(false)).KeyHints()); got != 2 {
		t.Errorf("KeyHints length after failure = %d, want 2", got)
	}
}
