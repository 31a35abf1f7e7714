package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_events", "answer_events", "badge_events", "login_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Level: 1, Action: ActionStart},
		{SessionID: "a", Level: 1, Action: ActionEnd, QuestionsServed: 20, CorrectAnswers: 20, DurationSecs: 90, Completed: true},
		{SessionID: "b", Level: 2, Action: ActionStart},
		{SessionID: "b", Level: 2, Action: ActionEnd, QuestionsServed: 7, CorrectAnswers: 5, WrongAnswers: 2, Failed: true},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append session event: %v", err)
		}
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query summaries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("summaries = %d, want 2", len(got))
	}
	if got[0].SessionID != "b" || !got[0].Failed || got[0].WrongAnswers != 2 {
		t.Errorf("newest summary = %+v, want failed session b", got[0])
	}
	if got[1].SessionID != "a" || !got[1].Completed || got[1].DurationSecs != 90 {
		t.Errorf("oldest summary = %+v, want completed session a", got[1])
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", got[0].Sequence, got[1].Sequence)
	}
	if got[1].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1, Level: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "a" {
		t.Errorf("limited = %+v, want only session a", limited)
	}
}

func TestAppendSessionEventRejectsUnknownAction(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendSessionEvent(context.Background(), SessionEventData{SessionID: "x", Action: "pause"})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestCompletedLevels(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []SessionEventData{
		{SessionID: "1", Level: 3, Action: ActionEnd, Completed: true},
		{SessionID: "2", Level: 1, Action: ActionEnd, Completed: true},
		{SessionID: "3", Level: 1, Action: ActionEnd, Completed: true},
		{SessionID: "4", Level: 2, Action: ActionEnd, Completed: true, Failed: true},
		{SessionID: "5", Level: 4, Action: ActionEnd},
	} {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	levels, err := repo.CompletedLevels(ctx)
	if err != nil {
		t.Fatalf("completed levels: %v", err)
	}
	if fmt.Sprint(levels) != "[1 3]" {
		t.Errorf("completed levels = %v, want [1 3]", levels)
	}
}

func TestAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "a", Level: 7, Combination: "8+5", CorrectAnswer: 13,
		GivenAnswer: -1, TimeMs: 5000, TimedOut: true,
	})
	if err != nil {
		t.Fatalf("append answer: %v", err)
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answer_events WHERE timed_out = 1").Scan(&n); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if n != 1 {
		t.Errorf("timed out answers = %d, want 1", n)
	}
}

func TestBadgeEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, b := range []BadgeEventData{
		{BadgeType: "level_complete", Level: 1, SessionID: "a"},
		{BadgeType: "level_complete", Level: 2, SessionID: "b"},
		{BadgeType: "perfect_level", Level: 2, SessionID: "b"},
	} {
		if err := repo.AppendBadgeEvent(ctx, b); err != nil {
			t.Fatalf("append badge: %v", err)
		}
	}

	counts, total, err := repo.BadgeCounts(ctx)
	if err != nil {
		t.Fatalf("badge counts: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if counts["level_complete"] != 2 || counts["perfect_level"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	badges, err := repo.QueryBadges(ctx, QueryOpts{Level: 2})
	if err != nil {
		t.Fatalf("query badges: %v", err)
	}
	if len(badges) != 2 {
		t.Fatalf("level 2 badges = %d, want 2", len(badges))
	}
	if badges[0].BadgeType != "perfect_level" {
		t.Errorf("newest badge = %q, want perfect_level", badges[0].BadgeType)
	}
	if badges[0].BadgeID == "" || badges[0].BadgeID == badges[1].BadgeID {
		t.Errorf("expected distinct generated badge ids, got %q and %q", badges[0].BadgeID, badges[1].BadgeID)
	}
}

func TestLoginDays(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	for _, at := range []time.Time{
		day1,
		day1.Add(3 * time.Hour), // same day
		day1.AddDate(0, 0, 1),
	} {
		if err := repo.AppendLoginEvent(ctx, at); err != nil {
			t.Fatalf("append login: %v", err)
		}
	}

	days, err := repo.LoginDays(ctx)
	if err != nil {
		t.Fatalf("login days: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("login days = %d, want 2", len(days))
	}
	if days[0].Format("2006-01-02") != "2026-03-01" || days[1].Format("2006-01-02") != "2026-03-02" {
		t.Errorf("days = %v", days)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendBadgeEvent(ctx, BadgeEventData{BadgeType: "skip_level"}); err != nil {
		t.Fatalf("append badge: %v", err)
	}
	if err := repo.AppendLoginEvent(ctx, time.Now()); err != nil {
		t.Fatalf("append login: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	_, total, err := repo.BadgeCounts(ctx)
	if err != nil {
		t.Fatalf("badge counts: %v", err)
	}
	if total != 0 {
		t.Errorf("badges after reset = %d, want 0", total)
	}
	days, err := repo.LoginDays(ctx)
	if err != nil {
		t.Fatalf("login days: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("login days after reset = %d, want 0", len(days))
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	want := dir + "/nested/game.db"
	t.Setenv(EnvDBPath, want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDBPath, "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if want := dir + "/mathaxy/mathaxy.db"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
