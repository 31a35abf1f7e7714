// Package play is the terminal screen a level is played on.
package play

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screen"
	"github.com/abhisek/mathaxy/internal/screens/summary"
	"github.com/abhisek/mathaxy/internal/store"
	"github.com/abhisek/mathaxy/internal/ui/components"
	"github.com/abhisek/mathaxy/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond
	correctDelay = 500 * time.Millisecond
	timeoutDelay = 1500 * time.Millisecond
)

// Deps are the services a level needs. Repo and Badges may be nil, which
// plays without persistence.
type Deps struct {
	Generator   *questiongen.Generator
	Repo        store.EventRepo
	Badges      *badges.Service
	Count       int
	LoginStreak int
	Logger      *zap.Logger
}

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseFeedback
	phaseQuitConfirm
	phaseEnding
)

type feedbackKind int

const (
	feedbackCorrect feedbackKind = iota
	feedbackTimeout
)

// PlayScreen implements screen.Screen for one level.
type PlayScreen struct {
	deps     Deps
	level    int
	session  *game.Session
	recorder *game.Recorder
	input    components.AnswerInput

	phase         phase
	resumePhase   phase
	feedback      feedbackKind
	feedbackText  string
	wrong         bool // last submission was wrong, still on the question
	skipped       bool // level ended by a fast run
	levelStart    time.Time
	questionStart time.Time
	now           time.Time
	guide         badges.Character
	cheers        int
	errMsg        string

	clock func() time.Time
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen for level.
func New(deps Deps, level int) *PlayScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Count <= 0 {
		deps.Count = levels.QuestionsPerLevel
	}
	if !levels.Valid(level) {
		level = 1
	}
	return &PlayScreen{
		deps:     deps,
		level:    level,
		recorder: game.NewRecorder(deps.Repo),
		input:    newAnswerInput(),
		clock:    time.Now,
	}
}

func newAnswerInput() components.AnswerInput {
	return components.NewAnswerInput()
}

func (p *PlayScreen) Init() tea.Cmd {
	return tea.Batch(
		p.generateSet(),
		p.input.Init(),
	)
}

func (p *PlayScreen) Title() string {
	return fmt.Sprintf("Level %d", p.level)
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End level"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseAsking:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Skip question"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setReadyMsg:
		return p.handleReady(msg)

	case timerTickMsg:
		return p.handleTick()

	case advanceMsg:
		return p.handleAdvance()

	case levelEndMsg:
		return p.handleLevelEnd()

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.phase == phaseAsking {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

// generateSet builds the question set off the update loop.
func (p *PlayScreen) generateSet() tea.Cmd {
	gen, level, count := p.deps.Generator, p.level, p.deps.Count
	return func() tea.Msg {
		qs, err := gen.Generate(level, count)
		return setReadyMsg{Questions: qs, Err: err}
	}
}

func (p *PlayScreen) handleReady(msg setReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.deps.Logger.Error("question set generation failed",
			zap.Int("level", p.level),
			zap.Int("count", p.deps.Count),
			zap.Error(msg.Err))
		p.errMsg = msg.Err.Error()
		return p, nil
	}

	p.session = game.NewSession(p.level, msg.Questions)
	p.recorder.Start(context.Background(), p.session)
	p.guide = badges.Panda
	if p.deps.Badges != nil {
		p.deps.Badges.ResetSession()
		if unlocked := p.deps.Badges.Characters(context.Background()); len(unlocked) > 0 {
			p.guide = unlocked[len(unlocked)-1]
		}
	}

	p.now = p.clock()
	p.levelStart = p.now
	p.questionStart = p.now
	p.phase = phaseAsking
	return p, tea.Batch(tickCmd(), p.input.Init())
}

func (p *PlayScreen) handleTick() (screen.Screen, tea.Cmd) {
	// A finished session waits out its feedback flash; the clock no longer
	// applies.
	if p.session == nil || p.phase == phaseEnding || p.session.Done() {
		return p, nil
	}
	p.now = p.clock()
	cfg := p.session.Config()

	if cfg.Mode == levels.ModeTotalTime && p.levelRemaining() <= 0 {
		p.session.MarkFailed()
		return p, endLevel()
	}

	if cfg.Mode == levels.ModePerQuestion && p.phase == phaseAsking && p.questionRemaining() <= 0 {
		q, _ := p.session.Current()
		p.session.Timeout(cfg.TimeLimit())
		p.recorder.Answer(context.Background(), p.session)
		p.showFeedback(feedbackTimeout, fmt.Sprintf("Time's up! %d + %d = %d", q.Addend1, q.Addend2, q.CorrectAnswer))
		return p, tea.Batch(tickCmd(), delay(timeoutDelay))
	}

	return p, tickCmd()
}

func (p *PlayScreen) handleAdvance() (screen.Screen, tea.Cmd) {
	if p.phase == phaseEnding {
		return p, nil
	}
	if p.session.Done() {
		return p, endLevel()
	}
	if p.phase == phaseQuitConfirm {
		// Let the player answer the dialog first; the question restarts after.
		p.resumePhase = phaseAsking
		return p, nil
	}
	return p, p.nextQuestion()
}

func (p *PlayScreen) nextQuestion() tea.Cmd {
	p.phase = phaseAsking
	p.wrong = false
	p.questionStart = p.clock()
	p.input = newAnswerInput()
	return p.input.Init()
}

func (p *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.errMsg != "" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch p.phase {
	case phaseLoading:
		if key == "esc" {
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}

	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return p, endLevel()
		case "n", "N", "esc":
			p.phase = p.resumePhase
			if p.phase == phaseAsking {
				p.questionStart = p.clock()
			}
			return p, nil
		}
		return p, nil

	case phaseAsking:
		switch key {
		case "esc":
			p.resumePhase = p.phase
			p.phase = phaseQuitConfirm
			return p, nil
		case "enter":
			return p.submitAnswer()
		case "tab":
			return p.skipQuestion()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd

	case phaseFeedback:
		if key == "esc" {
			p.resumePhase = phaseFeedback
			p.phase = phaseQuitConfirm
		}
	}
	return p, nil
}

// submitAnswer checks the typed answer. Wrong answers stay on the question.
func (p *PlayScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	answer, ok := p.input.Answer()
	if !ok {
		return p, nil
	}

	taken := p.clock().Sub(p.questionStart)
	correct := p.session.Submit(answer, taken)
	p.recorder.Answer(context.Background(), p.session)

	if !correct {
		p.wrong = true
		p.input.MarkWrong()
		if p.session.Done() {
			return p, endLevel()
		}
		return p, nil
	}

	if !p.session.Done() && p.session.FastRun() {
		p.session.CompleteEarly()
		p.skipped = true
	}
	p.showFeedback(feedbackCorrect, p.cheer())
	return p, delay(correctDelay)
}

func (p *PlayScreen) skipQuestion() (screen.Screen, tea.Cmd) {
	p.session.Skip()
	p.recorder.Answer(context.Background(), p.session)
	if p.session.Done() {
		return p, endLevel()
	}
	return p, p.nextQuestion()
}

func (p *PlayScreen) showFeedback(kind feedbackKind, text string) {
	p.phase = phaseFeedback
	p.feedback = kind
	p.feedbackText = text
}

// cheer rotates through the messages of the newest unlocked character.
func (p *PlayScreen) cheer() string {
	lines := p.guide.Cheers()
	p.cheers++
	return lines[(p.cheers-1)%len(lines)]
}

// handleLevelEnd persists the outcome, awards badges and shows the summary.
func (p *PlayScreen) handleLevelEnd() (screen.Screen, tea.Cmd) {
	if p.phase == phaseEnding {
		return p, nil
	}
	p.phase = phaseEnding

	ctx := context.Background()
	if p.session == nil {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	p.recorder.End(ctx, p.session, p.skipped)

	sum := p.session.Summary()
	result := summary.Result{
		Summary: sum,
		Skipped: p.skipped,
		Replay:  func() screen.Screen { return New(p.deps, p.level) },
	}
	if p.level < levels.TotalLevels {
		result.Next = func() screen.Screen { return New(p.deps, p.level+1) }
	}
	if p.deps.Badges != nil {
		_, before := p.deps.Badges.Counts(ctx)
		result.Awards = p.deps.Badges.AwardSession(ctx, sum, p.skipped, p.deps.LoginStreak)
		result.NewCharacters = newlyUnlocked(before, before+len(result.Awards))
	}

	p.deps.Logger.Info("level finished",
		zap.Int("level", sum.Level),
		zap.Bool("passed", sum.Passed()),
		zap.Bool("skipped", p.skipped),
		zap.Int("correct", sum.Correct),
		zap.Int("errors", sum.Errors),
		zap.Int("badges", len(result.Awards)))

	return p, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

func newlyUnlocked(before, after int) []badges.Character {
	var out []badges.Character
	for _, c := range badges.AllCharacters() {
		if before < c.Threshold() && after >= c.Threshold() {
			out = append(out, c)
		}
	}
	return out
}

func (p *PlayScreen) levelRemaining() time.Duration {
	return p.session.Config().TimeLimit() - p.now.Sub(p.levelStart)
}

func (p *PlayScreen) questionRemaining() time.Duration {
	return p.session.Config().TimeLimit() - p.now.Sub(p.questionStart)
}

func endLevel() tea.Cmd {
	return func() tea.Msg { return levelEndMsg{} }
}

func delay(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return advanceMsg{} })
}

// tickCmd returns the countdown tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
