package club

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Club, error)

	// GetSchedule returns the weekly opening hours of the club,
	// one entry per configured weekday.
	GetSchedule(ctx context.Context, clubID string) ([]DaySchedule, error)

	// GetCustomFeeRules returns the cancellation-fee rule table for clubs
	// on the custom policy tier, tightest window first.
	GetCustomFeeRules(ctx context.Context, clubID string) ([]FeeRule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Club, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "advance_booking_days", "min_booking_minutes",
		"max_booking_minutes", "cancellation_deadline_hours",
		"cancellation_policy", "created_at", "updated_at",
	).
		From("public.clubs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get club query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var c Club
	if err := row.Scan(
		&c.ID, &c.Name, &c.AdvanceBookingDays, &c.MinBookingMinutes,
		&c.MaxBookingMinutes, &c.CancellationDeadlineHours,
		&c.CancellationPolicy, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get club failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) GetSchedule(ctx context.Context, clubID string) ([]DaySchedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("weekday", "open_minutes", "close_minutes", "closed").
		From("public.club_schedules").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get schedule failed: %w", err)
	}
	defer rows.Close()

	var schedule []DaySchedule
	for rows.Next() {
		var (
			weekday      int
			openMinutes  int
			closeMinutes int
			closed       bool
		)
		if err := rows.Scan(&weekday, &openMinutes, &closeMinutes, &closed); err != nil {
			return nil, fmt.Errorf("scan schedule row failed: %w", err)
		}
		schedule = append(schedule, DaySchedule{
			Weekday: time.Weekday(weekday),
			Open:    time.Duration(openMinutes) * time.Minute,
			Close:   time.Duration(closeMinutes) * time.Minute,
			Closed:  closed,
		})
	}

	return schedule, nil
}

func (r *pgxRepository) GetCustomFeeRules(ctx context.Context, clubID string) ([]FeeRule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("hours_before", "percent").
		From("public.club_cancellation_rules").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("hours_before ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get fee rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get fee rules failed: %w", err)
	}
	defer rows.Close()

	var rules []FeeRule
	for rows.Next() {
		var hoursBefore int
		var percent int64
		if err := rows.Scan(&hoursBefore, &percent); err != nil {
			return nil, fmt.Errorf("scan fee rule failed: %w", err)
		}
		rules = append(rules, FeeRule{
			Before:  time.Duration(hoursBefore) * time.Hour,
			Percent: percent,
		})
	}

	return rules, nil
}
