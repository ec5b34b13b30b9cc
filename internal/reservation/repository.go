package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
)

// ErrStatusChanged is raised when a guarded update finds the reservation no
// longer in the expected status.
var ErrStatusChanged = apperror.New(apperror.KindConflict, "reservation was modified concurrently")

type Repository interface {
	// Create inserts the reservation. The insert races against the
	// exclusion constraint on (court_id, date, start_time, end_time)
	// scoped to active statuses; a violation surfaces as ErrSlotTaken.
	Create(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)

	// Update writes the mutable fields, guarded by the expected current
	// status. ErrStatusChanged is returned when the row moved on.
	Update(ctx context.Context, r *Reservation, fromStatus Status) error

	ListForCourtDate(ctx context.Context, courtID string, date time.Time, statuses []Status) ([]*Reservation, error)

	// MarkNoShows flips confirmed reservations whose end time passed
	// before cutoff to no_show and returns the affected ids.
	MarkNoShows(ctx context.Context, cutoff time.Time) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reservationColumns = `id, court_id, club_id, client_id, player_name, player_email, player_phone,
date, start_time, end_time, status, payment_status, player_count, total_price,
is_recurring, recurrence_pattern, parent_id,
cancellation_reason, cancellation_fee, cancelled_at, created_at, updated_at`

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns(
			"id", "court_id", "club_id", "client_id",
			"player_name", "player_email", "player_phone",
			"date", "start_time", "end_time",
			"status", "payment_status", "player_count", "total_price",
			"is_recurring", "recurrence_pattern", "parent_id",
		).
		Values(
			res.ID, res.CourtID, res.ClubID, res.ClientID,
			res.PlayerName, res.PlayerEmail, res.PlayerPhone,
			res.Date, res.StartTime, res.EndTime,
			res.Status, res.PaymentStatus, res.PlayerCount, res.TotalPrice,
			res.IsRecurring, res.RecurrencePattern, res.ParentID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// The reservations_court_time_excl constraint is the final
			// arbiter against the check-then-act race. Never leak the
			// raw database error to the caller.
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation, pgerrcode.UniqueViolation:
				return ErrSlotTaken
			}
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns).
		From("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Reservation, fromStatus Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", res.Status).
		Set("payment_status", res.PaymentStatus).
		Set("cancellation_reason", res.CancellationReason).
		Set("cancellation_fee", res.CancellationFee).
		Set("cancelled_at", res.CancelledAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		Where(squirrel.Eq{"status": fromStatus}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *pgxRepository) ListForCourtDate(ctx context.Context, courtID string, date time.Time, statuses []Status) ([]*Reservation, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reservationColumns).
		From("public.reservations").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"date": dayStart})

	if len(statuses) > 0 {
		query = query.Where(squirrel.Eq{"status": statuses})
	}

	sql, args, err := query.OrderBy("start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *pgxRepository) MarkNoShows(ctx context.Context, cutoff time.Time) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", StatusNoShow).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Where(squirrel.Lt{"end_time": cutoff}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build no-show sweep query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("no-show sweep failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan no-show id failed: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID, &res.CourtID, &res.ClubID, &res.ClientID,
		&res.PlayerName, &res.PlayerEmail, &res.PlayerPhone,
		&res.Date, &res.StartTime, &res.EndTime,
		&res.Status, &res.PaymentStatus, &res.PlayerCount, &res.TotalPrice,
		&res.IsRecurring, &res.RecurrencePattern, &res.ParentID,
		&res.CancellationReason, &res.CancellationFee, &res.CancelledAt,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
