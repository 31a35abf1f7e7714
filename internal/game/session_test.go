package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/store"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func questions(n int) []questiongen.Question {
	qs := make([]questiongen.Question, n)
	for i := range qs {
		qs[i] = questiongen.NewQuestion(i%10, (i+3)%10, 0)
	}
	return qs
}

func TestSubmit_CorrectAdvances(t *testing.T) {
	s := newSession(1, questions(3), fixedClock())

	q, ok := s.Current()
	require.True(t, ok)
	assert.True(t, s.Submit(q.CorrectAnswer, 2*time.Second))
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, 1, s.CorrectCount)
	assert.InDelta(t, 1.0/3, s.Progress(), 1e-9)
	assert.Equal(t, 2, s.Remaining())
}

func TestSubmit_WrongStays(t *testing.T) {
	s := newSession(1, questions(3), fixedClock())

	q, _ := s.Current()
	assert.False(t, s.Submit(q.CorrectAnswer+1, time.Second))
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 1, s.ErrorCount)

	again, _ := s.Current()
	assert.Equal(t, q, again)
	assert.True(t, s.Submit(q.CorrectAnswer, time.Second))
	assert.Equal(t, 0.5, s.Accuracy())
	assert.Equal(t, time.Second, s.AveragePerAnswer())
}

func TestSubmit_CompletesLevel(t *testing.T) {
	s := newSession(2, questions(2), fixedClock())
	for {
		q, ok := s.Current()
		if !ok {
			break
		}
		s.Submit(q.CorrectAnswer, time.Second)
	}
	assert.True(t, s.Completed)
	assert.False(t, s.Failed)
	assert.True(t, s.Summary().Passed())
	assert.Equal(t, 1.0, s.Progress())

	// Further submissions are ignored.
	assert.False(t, s.Submit(0, time.Second))
	assert.Len(t, s.Records, 2)
}

func TestTimeout_ForceAdvances(t *testing.T) {
	s := newSession(8, questions(2), fixedClock())

	s.Timeout(4 * time.Second)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, 1, s.ErrorCount)
	require.Len(t, s.Records, 1)
	assert.True(t, s.Records[0].TimedOut)
	assert.Equal(t, TimedOutAnswer, s.Records[0].Answer)
}

func TestSkip_CountsAsError(t *testing.T) {
	s := newSession(1, questions(1), fixedClock())
	s.Skip()
	assert.Equal(t, 1, s.ErrorCount)
	assert.True(t, s.Completed)
	assert.Zero(t, s.Accuracy())
}

func TestMaxErrorsFailsLevel(t *testing.T) {
	cfg := levels.Get(6)
	require.Equal(t, 10, cfg.MaxErrors)

	s := newSession(6, questions(20), fixedClock())
	q, _ := s.Current()
	for i := 0; i < cfg.MaxErrors; i++ {
		s.Submit(q.CorrectAnswer+1, time.Second)
	}
	assert.True(t, s.Failed)
	assert.True(t, s.Done())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestUnlimitedErrorsOnEarlyLevels(t *testing.T) {
	s := newSession(1, questions(20), fixedClock())
	q, _ := s.Current()
	for i := 0; i < 50; i++ {
		s.Submit(q.CorrectAnswer+1, time.Second)
	}
	assert.False(t, s.Failed)
}

func TestMarkFailed(t *testing.T) {
	s := newSession(3, questions(5), fixedClock())
	s.MarkFailed()
	assert.True(t, s.Done())
	assert.False(t, s.Summary().Passed())
}

func TestMarkFailed_KeepsCompletedResult(t *testing.T) {
	s := newSession(1, questions(1), fixedClock())
	q, _ := s.Current()
	require.True(t, s.Submit(q.CorrectAnswer, time.Second))
	require.True(t, s.Completed)

	s.MarkFailed()
	assert.False(t, s.Failed)
	assert.True(t, s.Summary().Passed())

	early := newSession(3, questions(20), fixedClock())
	early.CompleteEarly()
	early.MarkFailed()
	assert.True(t, early.Summary().Passed(), "a fast-run finish stays a pass")
}

func TestShouldSkipLevel(t *testing.T) {
	threshold := 3 * time.Second

	tests := []struct {
		name string
		play func(s *Session)
		want bool
	}{
		{
			name: "too few answers",
			play: func(s *Session) {
				for i := 0; i < levels.SkipCheckCount-1; i++ {
					q, _ := s.Current()
					s.Submit(q.CorrectAnswer, time.Second)
				}
			},
			want: false,
		},
		{
			name: "ten fast correct answers",
			play: func(s *Session) {
				for i := 0; i < levels.SkipCheckCount; i++ {
					q, _ := s.Current()
					s.Submit(q.CorrectAnswer, time.Second)
				}
			},
			want: true,
		},
		{
			name: "one slow answer",
			play: func(s *Session) {
				for i := 0; i < levels.SkipCheckCount; i++ {
					q, _ := s.Current()
					taken := time.Second
					if i == 4 {
						taken = threshold
					}
					s.Submit(q.CorrectAnswer, taken)
				}
			},
			want: false,
		},
		{
			name: "early mistake falls out of the window",
			play: func(s *Session) {
				q, _ := s.Current()
				s.Submit(q.CorrectAnswer+1, time.Second)
				for i := 0; i < levels.SkipCheckCount; i++ {
					q, _ := s.Current()
					s.Submit(q.CorrectAnswer, time.Second)
				}
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(1, questions(20), fixedClock())
			tt.play(s)
			assert.Equal(t, tt.want, s.ShouldSkipLevel(threshold))
		})
	}
}

func TestFastRunCompletesEarly(t *testing.T) {
	s := newSession(7, questions(20), fixedClock())
	for i := 0; i < levels.SkipCheckCount; i++ {
		q, _ := s.Current()
		s.Submit(q.CorrectAnswer, FastAnswer-time.Millisecond)
	}
	require.True(t, s.FastRun())

	s.CompleteEarly()
	assert.True(t, s.Completed)
	assert.True(t, s.Summary().Passed())
	assert.Equal(t, 10, s.Summary().Cleared)

	failed := newSession(7, questions(20), fixedClock())
	failed.MarkFailed()
	failed.CompleteEarly()
	assert.False(t, failed.Completed)
}

func TestSummary(t *testing.T) {
	s := newSession(4, questions(2), fixedClock())
	q, _ := s.Current()
	s.Submit(q.CorrectAnswer+1, time.Second)
	s.Submit(q.CorrectAnswer, 3*time.Second)

	sum := s.Summary()
	assert.Equal(t, s.ID, sum.SessionID)
	assert.Equal(t, 4, sum.Level)
	assert.Equal(t, 2, sum.Questions)
	assert.Equal(t, 1, sum.Cleared)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 0.5, sum.Accuracy)
	assert.Equal(t, 2*time.Second, sum.Average)
	assert.Equal(t, 4*time.Second, sum.Duration)
	assert.False(t, sum.Completed)
}

// fakeRepo captures recorder writes.
type fakeRepo struct {
	store.EventRepo
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
}

func (f *fakeRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	f.sessions = append(f.sessions, d)
	return nil
}

func (f *fakeRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	f.answers = append(f.answers, d)
	return nil
}

func TestRecorder(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo)
	ctx := context.Background()

	s := newSession(7, questions(1), fixedClock())
	rec.Start(ctx, s)
	s.Timeout(3 * time.Second)
	rec.Answer(ctx, s)
	rec.End(ctx, s, false)

	require.Len(t, repo.sessions, 2)
	assert.Equal(t, store.ActionStart, repo.sessions[0].Action)
	assert.Equal(t, store.ActionEnd, repo.sessions[1].Action)
	assert.True(t, repo.sessions[1].Completed)
	assert.Equal(t, 1, repo.sessions[1].WrongAnswers)
	assert.Equal(t, 3, repo.sessions[1].DurationSecs)

	require.Len(t, repo.answers, 1)
	assert.True(t, repo.answers[0].TimedOut)
	assert.Equal(t, int64(3000), repo.answers[0].TimeMs)
	assert.Equal(t, s.Questions[0].Combination(), repo.answers[0].Combination)
}

func TestRecorder_NilRepo(t *testing.T) {
	s := newSession(1, questions(1), fixedClock())
	var rec *Recorder
	rec.Start(context.Background(), s)
	NewRecorder(nil).End(context.Background(), s, true)
}
