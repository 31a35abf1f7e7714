// Package game tracks one play-through of a level: answers, timing, failure
// and the fast-run detection used for skip badges.
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
)

const (
	// TimedOutAnswer is recorded when the clock runs out or a question is skipped.
	TimedOutAnswer = -1

	// FastAnswer is the per-answer bound of a fast run.
	FastAnswer = 3 * time.Second
)

// AnswerRecord is one submitted answer.
type AnswerRecord struct {
	Question    questiongen.Question
	Answer      int
	Correct     bool
	Taken       time.Duration
	TimedOut    bool
	SubmittedAt time.Time
}

// recentAnswer feeds skip detection.
type recentAnswer struct {
	correct bool
	taken   time.Duration
}

// Session is the state of a level being played. It is not safe for
// concurrent use; the play screen owns it.
type Session struct {
	ID           string
	Level        int
	Questions    []questiongen.Question
	CurrentIndex int
	CorrectCount int
	ErrorCount   int
	StartTime    time.Time
	TotalTime    time.Duration
	Completed    bool
	Failed       bool
	Records      []AnswerRecord

	config levels.Config
	recent []recentAnswer
	now    func() time.Time
}

// NewSession starts a session for level over qs.
func NewSession(level int, qs []questiongen.Question) *Session {
	return newSession(level, qs, time.Now)
}

func newSession(level int, qs []questiongen.Question, now func() time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Level:     level,
		Questions: qs,
		StartTime: now(),
		config:    levels.Get(level),
		now:       now,
	}
}

// Config returns the level configuration the session runs under.
func (s *Session) Config() levels.Config {
	return s.config
}

// Current returns the question being asked, or false when none remain.
func (s *Session) Current() (questiongen.Question, bool) {
	if s.Done() || s.CurrentIndex >= len(s.Questions) {
		return questiongen.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Done reports whether the session has ended, successfully or not.
func (s *Session) Done() bool {
	return s.Completed || s.Failed
}

// Submit records answer for the current question. A correct answer advances
// to the next question; a wrong one stays put so the player can retry.
func (s *Session) Submit(answer int, taken time.Duration) bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	correct := questiongen.CheckAnswer(q, answer)
	s.record(q, answer, correct, taken, false)
	if correct {
		s.advance()
	}
	return correct
}

// Timeout records the current question as missed and moves on.
func (s *Session) Timeout(taken time.Duration) {
	q, ok := s.Current()
	if !ok {
		return
	}
	s.record(q, TimedOutAnswer, false, taken, true)
	s.advance()
}

// Skip gives up on the current question. It counts as an error.
func (s *Session) Skip() {
	q, ok := s.Current()
	if !ok {
		return
	}
	s.record(q, TimedOutAnswer, false, 0, false)
	s.advance()
}

// MarkFailed ends the session as failed, e.g. when the level clock expires.
// A session that already completed keeps its result.
func (s *Session) MarkFailed() {
	if s.Completed {
		return
	}
	s.Failed = true
}

func (s *Session) record(q questiongen.Question, answer int, correct bool, taken time.Duration, timedOut bool) {
	if correct {
		s.CorrectCount++
	} else {
		s.ErrorCount++
	}
	s.Records = append(s.Records, AnswerRecord{
		Question:    q,
		Answer:      answer,
		Correct:     correct,
		Taken:       taken,
		TimedOut:    timedOut,
		SubmittedAt: s.now(),
	})

	s.recent = append(s.recent, recentAnswer{correct: correct, taken: taken})
	if len(s.recent) > levels.SkipCheckCount {
		s.recent = s.recent[len(s.recent)-levels.SkipCheckCount:]
	}
	s.TotalTime += taken

	if s.config.MaxErrors > 0 && s.ErrorCount >= s.config.MaxErrors {
		s.Failed = true
	}
}

func (s *Session) advance() {
	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) && !s.Failed {
		s.Completed = true
	}
}

// Answered is the number of submissions so far, retries included.
func (s *Session) Answered() int {
	return s.CorrectCount + s.ErrorCount
}

// Accuracy is correct submissions over all submissions, 0 before any.
func (s *Session) Accuracy() float64 {
	n := s.Answered()
	if n == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(n)
}

// AveragePerAnswer is the mean time per submission.
func (s *Session) AveragePerAnswer() time.Duration {
	n := s.Answered()
	if n == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(n)
}

// Progress is the fraction of questions cleared, in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(min(s.CurrentIndex, len(s.Questions))) / float64(len(s.Questions))
}

// Remaining is the number of questions not yet cleared.
func (s *Session) Remaining() int {
	return max(len(s.Questions)-s.CurrentIndex, 0)
}

// ShouldSkipLevel reports whether the last SkipCheckCount answers were all
// correct and each faster than threshold.
func (s *Session) ShouldSkipLevel(threshold time.Duration) bool {
	if len(s.recent) < levels.SkipCheckCount {
		return false
	}
	for _, a := range s.recent {
		if !a.correct || a.taken >= threshold {
			return false
		}
	}
	return true
}

// FastRun reports whether the recent answers qualify as a fast run.
func (s *Session) FastRun() bool {
	return s.ShouldSkipLevel(FastAnswer)
}

// CompleteEarly ends a session that is still running as completed. Used
// when a fast run skips the remaining questions.
func (s *Session) CompleteEarly() {
	if s.Done() {
		return
	}
	s.Completed = true
}

// Summary is the outcome of a session.
type Summary struct {
	SessionID string        `json:"session_id"`
	Level     int           `json:"level"`
	Questions int           `json:"questions"`
	Cleared   int           `json:"cleared"`
	Correct   int           `json:"correct"`
	Errors    int           `json:"errors"`
	Accuracy  float64       `json:"accuracy"`
	Average   time.Duration `json:"average"`
	Duration  time.Duration `json:"duration"`
	Completed bool          `json:"completed"`
	Failed    bool          `json:"failed"`
}

// Passed reports whether the level was finished without failing.
func (s Summary) Passed() bool {
	return s.Completed && !s.Failed
}

// Summary builds the session outcome.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID: s.ID,
		Level:     s.Level,
		Questions: len(s.Questions),
		Cleared:   min(s.CurrentIndex, len(s.Questions)),
		Correct:   s.CorrectCount,
		Errors:    s.ErrorCount,
		Accuracy:  s.Accuracy(),
		Average:   s.AveragePerAnswer(),
		Duration:  s.TotalTime,
		Completed: s.Completed,
		Failed:    s.Failed,
	}
}
