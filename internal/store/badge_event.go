package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	if data.BadgeID == "" {
		data.BadgeID = uuid.NewString()
	}
	return r.insert(ctx, badgeEventsTable,
		[]string{"badge_id", "badge_type", "level", "session_id", "reason"},
		[]any{data.BadgeID, data.BadgeType, data.Level, data.SessionID, data.Reason},
	)
}

func (r *eventRepo) QueryBadges(ctx context.Context, opts QueryOpts) ([]BadgeRecord, error) {
	sel := builder().
		Select("badge_id", "badge_type", "level", "session_id", "reason", "sequence", "timestamp").
		From(builder().Table(badgeEventsTable)).
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
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var records []BadgeRecord
	for rows.Next() {
		var rec BadgeRecord
		if err := rows.Scan(&rec.BadgeID, &rec.BadgeType, &rec.Level, &rec.SessionID,
			&rec.Reason, &rec.Sequence, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) BadgeCounts(ctx context.Context) (map[string]int, int, error) {
	sel := builder().
		Select("badge_type", entsql.Count("*")).
		From(builder().Table(badgeEventsTable)).
		GroupBy("badge_type")

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query badge counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			badgeType string
			n         int
		)
		if err := rows.Scan(&badgeType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan badge count: %w", err)
		}
		byType[badgeType] = n
		total += n
	}
	return byType, total, rows.Err()
}
