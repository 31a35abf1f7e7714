package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	Level int   // only this level (0 = all)
	After int64 // sequence > After
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a level session starting or ending.
type SessionEventData struct {
	SessionID       string
	Level           int
	Action          string // ActionStart or ActionEnd
	QuestionsServed int
	CorrectAnswers  int
	WrongAnswers    int
	DurationSecs    int
	Completed       bool
	Failed          bool
	Skipped         bool
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID     string
	Level         int
	Combination   string
	CorrectAnswer int
	GivenAnswer   int
	Correct       bool
	TimeMs        int64
	TimedOut      bool
}

// BadgeEventData captures an awarded badge.
type BadgeEventData struct {
	BadgeID   string
	BadgeType string
	Level     int
	SessionID string
	Reason    string
}

// SessionSummaryRecord is a finished session as read back for history.
type SessionSummaryRecord struct {
	SessionID       string
	Level           int
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	WrongAnswers    int
	DurationSecs    int
	Completed       bool
	Failed          bool
	Skipped         bool
	Sequence        int64
}

// BadgeRecord is a persisted badge.
type BadgeRecord struct {
	BadgeID   string
	BadgeType string
	Level     int
	SessionID string
	Reason    string
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to game events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendBadgeEvent records an awarded badge.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// AppendLoginEvent records a login on the calendar day of at. Repeated
	// logins on the same day are ignored.
	AppendLoginEvent(ctx context.Context, at time.Time) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryBadges returns awarded badges, newest first.
	QueryBadges(ctx context.Context, opts QueryOpts) ([]BadgeRecord, error)

	// BadgeCounts returns the number of badges per type and in total.
	BadgeCounts(ctx context.Context) (map[string]int, int, error)

	// LoginDays returns the distinct login days in ascending order.
	LoginDays(ctx context.Context) ([]time.Time, error)

	// CompletedLevels returns the levels with at least one completed,
	// non-failed session, in ascending order.
	CompletedLevels(ctx context.Context) ([]int, error)

	// Reset deletes every event and rewinds the sequence.
	Reset(ctx context.Context) error
}

// eventRepo implements EventRepo with ent's SQL builder over database/sql.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert appends one row to table under the next global sequence.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	ins := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seq, time.Now().UTC()}, values...)...)
	query, args := ins.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		query, args := builder().Delete(t.Name).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", t.Name, err)
		}
	}
	if err := r.seq.reset(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}
