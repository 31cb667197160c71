package booking

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

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/db"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
)

type Repository interface {
	// Snapshot reads a campsite's capacity settings, spots and the bookings overlapping
	// [start, end] in one read-only transaction.
	Snapshot(ctx context.Context, campSiteID string, start, end time.Time) (*Snapshot, error)
	// CreateChecked locks the campsite, runs check against a fresh snapshot of the stay's
	// dates and inserts b only if check passes. Concurrent bookings of a campsite serialize here.
	CreateChecked(ctx context.Context, b *Booking, check func(*Snapshot) error) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateStatus moves a booking from status from to status to. It fails with
	// ErrInvalidTransition when the booking no longer has status from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Snapshot(ctx context.Context, campSiteID string, start, end time.Time) (*Snapshot, error) {
	var snap *Snapshot
	err := db.WithTx(ctx, r.pool, db.ReadSnapshot, func(tx pgx.Tx) error {
		var err error
		snap, err = readSnapshot(ctx, tx, campSiteID, start, end, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *pgxRepository) CreateChecked(ctx context.Context, b *Booking, check func(*Snapshot) error) error {
	return db.WithTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		snap, err := readSnapshot(ctx, tx, b.CampSiteID, b.CheckIn, b.CheckOut, true)
		if err != nil {
			return err
		}
		if err := check(snap); err != nil {
			return err
		}
		return insertBooking(ctx, tx, b)
	})
}

func readSnapshot(ctx context.Context, q db.Querier, campSiteID string, start, end time.Time, lock bool) (*Snapshot, error) {
	sel := psql.Select("id", "operator_id", "is_published", "max_guests_per_day", "max_tents_per_day", "use_spot_view").
		From("public.campsites").
		Where(squirrel.Eq{"id": campSiteID, "is_active": true})
	if lock {
		// New bookings are only taken on published campsites.
		sel = sel.Where(squirrel.Eq{"is_published": true}).Suffix("FOR UPDATE")
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build campsite capacity query failed: %w", err)
	}

	cs := &campsite.CampSite{}
	if err := q.QueryRow(ctx, query, args...).Scan(
		&cs.ID, &cs.OperatorID, &cs.IsPublished, &cs.MaxGuestsPerDay, &cs.MaxTentsPerDay, &cs.UseSpotView,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampSiteNotFound
		}
		return nil, fmt.Errorf("read campsite capacity failed: %w", err)
	}

	spots, err := spot.ListSpots(ctx, q, campSiteID)
	if err != nil {
		return nil, err
	}

	bookings, err := listOverlapping(ctx, q, campSiteID, start, end)
	if err != nil {
		return nil, err
	}

	return &Snapshot{CampSite: cs, Spots: spots, Bookings: bookings}, nil
}

func listOverlapping(ctx context.Context, q db.Querier, campSiteID string, start, end time.Time) ([]*Booking, error) {
	query, args, err := psql.Select(
		"id", "campsite_id", "spot_id", "user_id", "check_in_date", "check_out_date", "guests", "tents", "status",
	).
		From("public.bookings").
		Where(squirrel.Eq{"campsite_id": campSiteID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.LtOrEq{"check_in_date": end}).
		Where(squirrel.GtOrEq{"check_out_date": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping bookings query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CampSiteID, &b.SpotID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.Tents, &b.Status,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overlapping bookings failed: %w", err)
	}
	return bookings, nil
}

func insertBooking(ctx context.Context, q db.Querier, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("campsite_id", "spot_id", "user_id", "check_in_date", "check_out_date", "guests", "tents", "status").
		Values(b.CampSiteID, b.SpotID, b.UserID, b.CheckIn, b.CheckOut, b.Guests, b.Tents, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrSpotNotFound
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func selectBooking() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.campsite_id", "COALESCE(NULLIF(c.name_en, ''), c.name_th)", "b.spot_id",
		"b.user_id", "COALESCE(u.display_name, '')",
		"b.check_in_date", "b.check_out_date", "b.guests", "b.tents", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.campsites c ON b.campsite_id = c.id").
		Join("public.users u ON b.user_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.CampSiteID, &b.CampSiteName, &b.SpotID,
		&b.UserID, &b.UserName,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.Tents, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBooking().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := selectBooking().Column("count(*) OVER() AS total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CampSiteID != "" {
		query = query.Where(squirrel.Eq{"b.campsite_id": filter.CampSiteID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Stays overlapping [From, To], both ends inclusive.
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_out_date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in_date": *filter.To})
	}

	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("b.check_in_date "+orderDir, "b.id")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Nothing matched: either the booking is gone or another writer changed its status first.
	var exists bool
	if err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)", id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check booking failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInvalidTransition
}
