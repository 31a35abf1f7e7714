package badges

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/store"
)

// mockEventRepo implements store.EventRepo for badge tests.
type mockEventRepo struct {
	badgeEvents []store.BadgeEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, _ store.SessionEventData) error {
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, _ store.AnswerEventData) error {
	return nil
}
func (m *mockEventRepo) AppendBadgeEvent(_ context.Context, data store.BadgeEventData) error {
	m.badgeEvents = append(m.badgeEvents, data)
	return nil
}
func (m *mockEventRepo) AppendLoginEvent(_ context.Context, _ time.Time) error {
	return nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryBadges(_ context.Context, _ store.QueryOpts) ([]store.BadgeRecord, error) {
	out := make([]store.BadgeRecord, len(m.badgeEvents))
	for i, e := range m.badgeEvents {
		out[i] = store.BadgeRecord{BadgeType: e.BadgeType, Level: e.Level, SessionID: e.SessionID}
	}
	return out, nil
}
func (m *mockEventRepo) BadgeCounts(_ context.Context) (map[string]int, int, error) {
	counts := make(map[string]int)
	for _, e := range m.badgeEvents {
		counts[e.BadgeType]++
	}
	return counts, len(m.badgeEvents), nil
}
func (m *mockEventRepo) LoginDays(_ context.Context) ([]time.Time, error) {
	return nil, nil
}
func (m *mockEventRepo) CompletedLevels(_ context.Context) ([]int, error) {
	return nil, nil
}
func (m *mockEventRepo) Reset(_ context.Context) error {
	m.badgeEvents = nil
	return nil
}

func passedSummary(level, errors int) game.Summary {
	correct := 20
	return game.Summary{
		SessionID: "sess-1",
		Level:     level,
		Questions: 20,
		Cleared:   20,
		Correct:   correct,
		Errors:    errors,
		Accuracy:  float64(correct) / float64(correct+errors),
		Average:   8 * time.Second,
		Completed: true,
	}
}

func hasType(awards []Award, t Type) bool {
	for _, a := range awards {
		if a.Type == t {
			return true
		}
	}
	return false
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		sum     game.Summary
		skipped bool
		streak  int
		owned   Owned
		want    []Type
	}{
		{
			name: "cleared with mistakes",
			sum:  passedSummary(2, 3),
			want: []Type{LevelComplete},
		},
		{
			name: "perfect clear",
			sum:  passedSummary(2, 0),
			want: []Type{LevelComplete, PerfectLevel},
		},
		{
			name: "failed level earns nothing",
			sum:  game.Summary{Level: 7, Completed: true, Failed: true, Errors: 10},
			want: nil,
		},
		{
			name:    "fast run",
			sum:     game.Summary{Level: 3, Accuracy: 1},
			skipped: true,
			want:    []Type{SkipLevel},
		},
		{
			name: "fast accurate clear",
			sum: func() game.Summary {
				s := passedSummary(4, 1)
				s.Average = 2 * time.Second
				return s
			}(),
			want: []Type{LevelComplete, SkipLevel},
		},
		{
			name:   "login streak",
			sum:    game.Summary{Level: 1},
			streak: 7,
			want:   []Type{ConsecutiveLogin},
		},
		{
			name:  "level complete is per level",
			sum:   passedSummary(5, 1),
			owned: Owned{KeyFor(LevelComplete, 4): true},
			want:  []Type{LevelComplete},
		},
		{
			name:  "one-off badges are not repeated",
			sum:   passedSummary(5, 0),
			owned: Owned{KeyFor(LevelComplete, 5): true, KeyFor(PerfectLevel, 1): true},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.sum, tt.skipped, tt.streak, tt.owned)
			if len(got) != len(tt.want) {
				t.Fatalf("awards = %+v, want types %v", got, tt.want)
			}
			for _, w := range tt.want {
				if !hasType(got, w) {
					t.Errorf("missing %q in %+v", w, got)
				}
			}
		})
	}
}

func TestKeyFor(t *testing.T) {
	if k := KeyFor(PerfectLevel, 6); k.Level != 0 {
		t.Errorf("PerfectLevel key level = %d, want 0", k.Level)
	}
	if k := KeyFor(LevelComplete, 6); k.Level != 6 {
		t.Errorf("LevelComplete key level = %d, want 6", k.Level)
	}
}

func TestUnlockedCharacters(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0}, {2, 0}, {3, 1}, {6, 1}, {7, 2}, {20, 2},
	}
	for _, tt := range tests {
		if got := len(UnlockedCharacters(tt.total)); got != tt.want {
			t.Errorf("UnlockedCharacters(%d) = %d characters, want %d", tt.total, got, tt.want)
		}
	}

	c, needed, ok := NextCharacter(4)
	if !ok || c != Rabbit || needed != 3 {
		t.Errorf("NextCharacter(4) = %q, %d, %v", c, needed, ok)
	}
	if _, _, ok := NextCharacter(7); ok {
		t.Error("expected all characters unlocked at 7")
	}
}

func TestAwardSession_Persists(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	awards := svc.AwardSession(ctx, passedSummary(1, 0), false, 0)
	if len(awards) != 2 {
		t.Fatalf("awards = %d, want 2", len(awards))
	}
	if len(repo.badgeEvents) != 2 {
		t.Fatalf("persisted %d events, want 2", len(repo.badgeEvents))
	}
	if repo.badgeEvents[0].SessionID != "sess-1" {
		t.Errorf("persisted session = %q, want sess-1", repo.badgeEvents[0].SessionID)
	}
	if awards[0].AwardedAt.IsZero() {
		t.Error("expected AwardedAt to be set")
	}

	// Replaying the same level earns nothing new.
	again := svc.AwardSession(ctx, passedSummary(1, 0), false, 0)
	if len(again) != 0 {
		t.Errorf("repeat awards = %+v, want none", again)
	}
	if len(svc.SessionBadges) != 2 {
		t.Errorf("SessionBadges = %d, want 2", len(svc.SessionBadges))
	}

	svc.ResetSession()
	if svc.SessionBadges != nil {
		t.Errorf("SessionBadges after reset = %v, want nil", svc.SessionBadges)
	}
}

func TestAwardLogin(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if a := svc.AwardLogin(ctx, 6); a != nil {
		t.Errorf("award at 6 days = %+v, want nil", a)
	}
	a := svc.AwardLogin(ctx, 7)
	if a == nil || a.Type != ConsecutiveLogin {
		t.Fatalf("award at 7 days = %+v", a)
	}
	if a := svc.AwardLogin(ctx, 8); a != nil {
		t.Errorf("second login award = %+v, want nil", a)
	}
}

func TestCountsAndCharacters(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	for level := 1; level <= 3; level++ {
		svc.AwardSession(ctx, passedSummary(level, 1), false, 0)
	}
	counts, total := svc.Counts(ctx)
	if total != 3 || counts[LevelComplete] != 3 {
		t.Errorf("counts = %v total = %d", counts, total)
	}
	chars := svc.Characters(ctx)
	if len(chars) != 1 || chars[0] != Panda {
		t.Errorf("characters = %v, want [panda]", chars)
	}
}

func TestNilEventRepo(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	awards := svc.AwardSession(ctx, passedSummary(1, 0), false, 0)
	if len(awards) != 2 {
		t.Errorf("awards = %d, want 2 even without a repo", len(awards))
	}
	if _, total := svc.Counts(ctx); total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestTypeLabels(t *testing.T) {
	for _, ty := range AllTypes() {
		if ty.DisplayName() == string(ty) || ty.Description() == "" || ty.Icon() == "✦" {
			t.Errorf("type %q missing labels", ty)
		}
	}
}
