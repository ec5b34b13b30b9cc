package block

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, slot *BlockedSlot) error

	// ListForCourtDate returns active blocks that cover the court on the
	// given day, including club-wide blocks (court_id IS NULL).
	ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*BlockedSlot, error)

	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *BlockedSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blocked_slots").
		Columns("id", "club_id", "court_id", "start_time", "end_time", "reason", "notes", "is_active").
		Values(b.ID, b.ClubID, b.CourtID, b.StartTime, b.EndTime, b.Reason, b.Notes, b.IsActive).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create block query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.CreatedAt)
}

func (r *pgxRepository) ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*BlockedSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "club_id", "court_id", "start_time", "end_time",
		"reason", "notes", "is_active", "created_at",
	).
		From("public.blocked_slots").
		Where(squirrel.Eq{"club_id": clubID}).
		Where(squirrel.Or{
			squirrel.Eq{"court_id": nil},
			squirrel.Eq{"court_id": courtID},
		}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		Where(squirrel.Gt{"end_time": dayStart}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []*BlockedSlot
	for rows.Next() {
		var b BlockedSlot
		if err := rows.Scan(
			&b.ID, &b.ClubID, &b.CourtID, &b.StartTime, &b.EndTime,
			&b.Reason, &b.Notes, &b.IsActive, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan block failed: %w", err)
		}
		blocks = append(blocks, &b)
	}

	return blocks, nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.blocked_slots").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate block query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate block failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
