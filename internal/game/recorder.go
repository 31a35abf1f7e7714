package game

import (
	"context"

	"github.com/abhisek/mathaxy/internal/store"
)

// Recorder persists session progress to the event log. A nil repo turns
// every call into a no-op. Write failures are dropped so play continues.
type Recorder struct {
	repo store.EventRepo
}

// NewRecorder creates a Recorder over repo.
func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

// Start records the session start.
func (r *Recorder) Start(ctx context.Context, s *Session) {
	if r == nil || r.repo == nil {
		return
	}
	_ = r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.ID,
		Level:           s.Level,
		Action:          store.ActionStart,
		QuestionsServed: len(s.Questions),
	})
}

// Answer records the most recent answer of s.
func (r *Recorder) Answer(ctx context.Context, s *Session) {
	if r == nil || r.repo == nil || len(s.Records) == 0 {
		return
	}
	rec := s.Records[len(s.Records)-1]
	_ = r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.ID,
		Level:         s.Level,
		Combination:   rec.Question.Combination(),
		CorrectAnswer: rec.Question.CorrectAnswer,
		GivenAnswer:   rec.Answer,
		Correct:       rec.Correct,
		TimeMs:        rec.Taken.Milliseconds(),
		TimedOut:      rec.TimedOut,
	})
}

// End records the session outcome. skipped marks a fast run.
func (r *Recorder) End(ctx context.Context, s *Session, skipped bool) {
	if r == nil || r.repo == nil {
		return
	}
	sum := s.Summary()
	_ = r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.ID,
		Level:           s.Level,
		Action:          store.ActionEnd,
		QuestionsServed: sum.Cleared,
		CorrectAnswers:  sum.Correct,
		WrongAnswers:    sum.Errors,
		DurationSecs:    int(sum.Duration.Seconds()),
		Completed:       sum.Completed,
		Failed:          sum.Failed,
		Skipped:         skipped,
	})
}
