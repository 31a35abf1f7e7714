package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.Action != ActionStart && data.Action != ActionEnd {
		return fmt.Errorf("unknown session action %q", data.Action)
	}
	return r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "level", "action", "questions_served", "correct_answers",
			"wrong_answers", "duration_secs", "completed", "failed", "skipped"},
		[]any{data.SessionID, data.Level, data.Action, data.QuestionsServed, data.CorrectAnswers,
			data.WrongAnswers, data.DurationSecs, data.Completed, data.Failed, data.Skipped},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, answerEventsTable,
		[]string{"session_id", "level", "combination", "correct_answer", "given_answer",
			"correct", "time_ms", "timed_out"},
		[]any{data.SessionID, data.Level, data.Combination, data.CorrectAnswer, data.GivenAnswer,
			data.Correct, data.TimeMs, data.TimedOut},
	)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	t := builder().Table(sessionEventsTable)
	sel := builder().
		Select("session_id", "level", "timestamp", "questions_served", "correct_answers",
			"wrong_answers", "duration_secs", "completed", "failed", "skipped", "sequence").
		From(t).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Level > 0 {
		sel = sel.Where(entsql.EQ("level", opts.Level))
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.Level, &rec.Timestamp, &rec.QuestionsServed,
			&rec.CorrectAnswers, &rec.WrongAnswers, &rec.DurationSecs, &rec.Completed,
			&rec.Failed, &rec.Skipped, &rec.Sequence); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) CompletedLevels(ctx context.Context) ([]int, error) {
	sel := builder().
		Select(entsql.Distinct("level")).
		From(builder().Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("action", ActionEnd),
			entsql.EQ("completed", true),
			entsql.EQ("failed", false),
		)).
		OrderBy("level")

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completed levels: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		out = append(out, level)
	}
	return out, rows.Err()
}
