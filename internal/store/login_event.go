package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// dayLayout is the storage form of a login day.
const dayLayout = "2006-01-02"

func (r *eventRepo) AppendLoginEvent(ctx context.Context, at time.Time) error {
	day := at.Format(dayLayout)

	exists, err := r.loginDayExists(ctx, day)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.insert(ctx, loginEventsTable, []string{"day"}, []any{day})
}

func (r *eventRepo) loginDayExists(ctx context.Context, day string) (bool, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(builder().Table(loginEventsTable)).
		Where(entsql.EQ("day", day)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("query login day: %w", err)
	}
	return n > 0, nil
}

func (r *eventRepo) LoginDays(ctx context.Context) ([]time.Time, error) {
	query, args := builder().
		Select("day").
		From(builder().Table(loginEventsTable)).
		OrderBy("day").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query login days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan login day: %w", err)
		}
		d, err := time.ParseInLocation(dayLayout, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse login day %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
