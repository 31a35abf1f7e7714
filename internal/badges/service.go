package badges

import (
	"context"
	"time"

	"github.com/abhisek/mathaxy/internal/game"
	"github.com/abhisek/mathaxy/internal/store"
)

// Service awards badges and tracks what the player owns.
type Service struct {
	eventRepo store.EventRepo
	now       func() time.Time

	// SessionBadges accumulates badges awarded during the current session.
	SessionBadges []Award
}

// NewService creates a badge Service.
func NewService(eventRepo store.EventRepo) *Service {
	return &Service{eventRepo: eventRepo, now: time.Now}
}

// Owned loads the badges already earned.
func (s *Service) Owned(ctx context.Context) (Owned, error) {
	owned := Owned{}
	if s.eventRepo == nil {
		return owned, nil
	}
	records, err := s.eventRepo.QueryBadges(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		owned[KeyFor(Type(r.BadgeType), r.Level)] = true
	}
	return owned, nil
}

// AwardSession evaluates a finished session and persists new badges.
func (s *Service) AwardSession(ctx context.Context, sum game.Summary, skipped bool, loginStreak int) []Award {
	owned, err := s.Owned(ctx)
	if err != nil {
		owned = Owned{}
	}
	awards := Evaluate(sum, skipped, loginStreak, owned)
	for i := range awards {
		awards[i].AwardedAt = s.now()
		s.persist(ctx, awards[i])
	}
	s.SessionBadges = append(s.SessionBadges, awards...)
	return awards
}

// AwardLogin grants the consecutive-login badge outside a session.
func (s *Service) AwardLogin(ctx context.Context, loginStreak int) *Award {
	owned, err := s.Owned(ctx)
	if err != nil {
		owned = Owned{}
	}
	awards := Evaluate(game.Summary{}, false, loginStreak, owned)
	if len(awards) == 0 {
		return nil
	}
	award := awards[0]
	award.AwardedAt = s.now()
	s.persist(ctx, award)
	s.SessionBadges = append(s.SessionBadges, award)
	return &award
}

// ResetSession clears the session badge accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionBadges = nil
}

// Counts returns badge totals by type and overall.
func (s *Service) Counts(ctx context.Context) (map[Type]int, int) {
	out := make(map[Type]int)
	if s.eventRepo == nil {
		return out, 0
	}
	byType, total, err := s.eventRepo.BadgeCounts(ctx)
	if err != nil {
		return out, 0
	}
	for t, n := range byType {
		out[Type(t)] = n
	}
	return out, total
}

// Characters returns the characters unlocked by the badges owned so far.
func (s *Service) Characters(ctx context.Context) []Character {
	_, total := s.Counts(ctx)
	return UnlockedCharacters(total)
}

func (s *Service) persist(ctx context.Context, award Award) {
	if s.eventRepo == nil {
		return
	}
	_ = s.eventRepo.AppendBadgeEvent(ctx, store.BadgeEventData{
		BadgeType: string(award.Type),
		Level:     award.Level,
		SessionID: award.SessionID,
		Reason:    award.Reason,
	})
}
