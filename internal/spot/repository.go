package spot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/db"
)

// Repository defines persistence for spots.
type Repository interface {
	ListByCampSite(ctx context.Context, campSiteID string) ([]*Spot, error)
	GetByID(ctx context.Context, campSiteID, id string) (*Spot, error)
	Create(ctx context.Context, s *Spot) error
	Update(ctx context.Context, s *Spot) error
	Delete(ctx context.Context, campSiteID, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectSpot() squirrel.SelectBuilder {
	return psql.Select(
		"id", "campsite_id", "name", "max_campers", "max_tents", "environment",
		"price_per_night", "price_per_site", "created_at", "updated_at",
	).From("public.spots")
}

func scanSpot(row pgx.Row) (*Spot, error) {
	var s Spot
	err := row.Scan(
		&s.ID, &s.CampSiteID, &s.Name, &s.MaxCampers, &s.MaxTents, &s.Environment,
		&s.PricePerNight, &s.PricePerSite, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSpots reads the spots of a campsite through q, which may be a transaction.
func ListSpots(ctx context.Context, q db.Querier, campSiteID string) ([]*Spot, error) {
	query, args, err := selectSpot().
		Where(squirrel.Eq{"campsite_id": campSiteID}).
		OrderBy("name ASC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list spots query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spots failed: %w", err)
	}
	defer rows.Close()

	spots := []*Spot{}
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spot failed: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spots failed: %w", err)
	}
	return spots, nil
}

func (r *pgxRepository) ListByCampSite(ctx context.Context, campSiteID string) ([]*Spot, error) {
	return ListSpots(ctx, r.pool, campSiteID)
}

func (r *pgxRepository) GetByID(ctx context.Context, campSiteID, id string) (*Spot, error) {
	query, args, err := selectSpot().
		Where(squirrel.Eq{"id": id, "campsite_id": campSiteID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get spot query failed: %w", err)
	}

	s, err := scanSpot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get spot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Spot) error {
	query, args, err := psql.Insert("public.spots").
		Columns("campsite_id", "name", "max_campers", "max_tents", "environment", "price_per_night", "price_per_site").
		Values(s.CampSiteID, s.Name, s.MaxCampers, s.MaxTents, s.Environment, s.PricePerNight, s.PricePerSite).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create spot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return campsite.ErrNotFound
		}
		return fmt.Errorf("create spot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Spot) error {
	query, args, err := psql.Update("public.spots").
		Set("name", s.Name).
		Set("max_campers", s.MaxCampers).
		Set("max_tents", s.MaxTents).
		Set("environment", s.Environment).
		Set("price_per_night", s.PricePerNight).
		Set("price_per_site", s.PricePerSite).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID, "campsite_id": s.CampSiteID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update spot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update spot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, campSiteID, id string) error {
	query, args, err := psql.Delete("public.spots").
		Where(squirrel.Eq{"id": id, "campsite_id": campSiteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete spot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete spot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
