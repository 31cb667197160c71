package campsite

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/db"
)

// Repository defines persistence for campsites.
type Repository interface {
	// List returns the campsites matching pred, one page at a time, plus the total match count.
	List(ctx context.Context, pred Predicate, filter Filter) ([]*CampSite, int, error)
	// Count returns the number of campsites matching pred.
	Count(ctx context.Context, pred Predicate) (int, error)
	GetByID(ctx context.Context, id string) (*CampSite, error)
	Create(ctx context.Context, cs *CampSite) error
	Update(ctx context.Context, cs *CampSite) error
	Delete(ctx context.Context, id string) error
	// GetOperatorID returns the owning operator of an active campsite.
	GetOperatorID(ctx context.Context, id string) (string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var campsiteColumns = []string{
	"c.id", "c.operator_id", "COALESCE(u.display_name, '')",
	"c.name_th", "c.name_en", "c.description", "c.campsite_type",
	"c.is_active", "c.is_published", "c.price_low", "c.price_high",
	"c.access_types", "c.facilities", "c.external_facilities", "c.equipment", "c.activities", "c.terrain",
	"c.max_guests_per_day", "c.max_tents_per_day", "c.use_spot_view",
	"COALESCE(l.province, '')", "COALESCE(l.district, '')", "COALESCE(l.address, '')", "l.latitude", "l.longitude",
	"c.created_at", "c.updated_at",
}

// fromCampsites applies the joins every campsite query shares.
func fromCampsites(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("public.campsites c").
		Join("public.users u ON c.operator_id = u.id").
		LeftJoin("public.campsite_locations l ON l.campsite_id = c.id")
}

func scanCampSite(row pgx.Row, extra ...any) (*CampSite, error) {
	var cs CampSite
	var access, facilities, external, equipment, activities, terrain string
	dest := []any{
		&cs.ID, &cs.OperatorID, &cs.OperatorName,
		&cs.NameTH, &cs.NameEN, &cs.Description, &cs.Type,
		&cs.IsActive, &cs.IsPublished, &cs.PriceLow, &cs.PriceHigh,
		&access, &facilities, &external, &equipment, &activities, &terrain,
		&cs.MaxGuestsPerDay, &cs.MaxTentsPerDay, &cs.UseSpotView,
		&cs.Location.Province, &cs.Location.District, &cs.Location.Address,
		&cs.Location.Latitude, &cs.Location.Longitude,
		&cs.CreatedAt, &cs.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	cs.AccessTypes = ParseCodes(access)
	cs.Facilities = ParseCodes(facilities)
	cs.ExternalFacilities = ParseCodes(external)
	cs.Equipment = ParseCodes(equipment)
	cs.Activities = ParseCodes(activities)
	cs.Terrain = ParseCodes(terrain)
	return &cs, nil
}

func (r *pgxRepository) List(ctx context.Context, pred Predicate, filter Filter) ([]*CampSite, int, error) {
	where, err := ToSql(pred)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := fromCampsites(psql.Select(append(campsiteColumns, "count(*) OVER() AS total_count")...)).
		Where(where).
		OrderBy("c.created_at DESC", "c.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list campsites query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campsites failed: %w", err)
	}
	defer rows.Close()

	var sites []*CampSite
	var total int
	for rows.Next() {
		cs, err := scanCampSite(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campsite failed: %w", err)
		}
		sites = append(sites, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list campsites failed: %w", err)
	}

	return sites, total, nil
}

func (r *pgxRepository) Count(ctx context.Context, pred Predicate) (int, error) {
	where, err := ToSql(pred)
	if err != nil {
		return 0, err
	}

	query, args, err := fromCampsites(psql.Select("count(*)")).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count campsites query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count campsites failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*CampSite, error) {
	query, args, err := fromCampsites(psql.Select(campsiteColumns...)).
		Where(squirrel.Eq{"c.id": id, "c.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get campsite query failed: %w", err)
	}

	cs, err := scanCampSite(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get campsite failed: %w", err)
	}
	return cs, nil
}

func (r *pgxRepository) Create(ctx context.Context, cs *CampSite) error {
	return db.WithTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query, args, err := psql.Insert("public.campsites").
			Columns(
				"operator_id", "name_th", "name_en", "description", "campsite_type",
				"is_active", "is_published", "price_low", "price_high",
				"access_types", "facilities", "external_facilities", "equipment", "activities", "terrain",
				"max_guests_per_day", "max_tents_per_day", "use_spot_view",
			).
			Values(
				cs.OperatorID, cs.NameTH, cs.NameEN, cs.Description, cs.Type,
				cs.IsActive, cs.IsPublished, cs.PriceLow, cs.PriceHigh,
				cs.AccessTypes.String(), cs.Facilities.String(), cs.ExternalFacilities.String(),
				cs.Equipment.String(), cs.Activities.String(), cs.Terrain.String(),
				cs.MaxGuestsPerDay, cs.MaxTentsPerDay, cs.UseSpotView,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create campsite query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return fmt.Errorf("create campsite failed: %w", err)
		}
		return upsertLocation(ctx, tx, cs.ID, cs.Location)
	})
}

func (r *pgxRepository) Update(ctx context.Context, cs *CampSite) error {
	return db.WithTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query, args, err := psql.Update("public.campsites").
			Set("name_th", cs.NameTH).
			Set("name_en", cs.NameEN).
			Set("description", cs.Description).
			Set("campsite_type", cs.Type).
			Set("is_published", cs.IsPublished).
			Set("price_low", cs.PriceLow).
			Set("price_high", cs.PriceHigh).
			Set("access_types", cs.AccessTypes.String()).
			Set("facilities", cs.Facilities.String()).
			Set("external_facilities", cs.ExternalFacilities.String()).
			Set("equipment", cs.Equipment.String()).
			Set("activities", cs.Activities.String()).
			Set("terrain", cs.Terrain.String()).
			Set("max_guests_per_day", cs.MaxGuestsPerDay).
			Set("max_tents_per_day", cs.MaxTentsPerDay).
			Set("use_spot_view", cs.UseSpotView).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": cs.ID, "is_active": true}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update campsite query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&cs.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("update campsite failed: %w", err)
		}
		return upsertLocation(ctx, tx, cs.ID, cs.Location)
	})
}

func upsertLocation(ctx context.Context, q db.Querier, campSiteID string, loc Location) error {
	query, args, err := psql.Insert("public.campsite_locations").
		Columns("campsite_id", "province", "district", "address", "latitude", "longitude").
		Values(campSiteID, loc.Province, loc.District, loc.Address, loc.Latitude, loc.Longitude).
		Suffix(`ON CONFLICT (campsite_id) DO UPDATE SET
			province = EXCLUDED.province, district = EXCLUDED.district, address = EXCLUDED.address,
			latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert location query failed: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert campsite location failed: %w", err)
	}
	return nil
}

// Delete is a soft delete; bookings and history keep referencing the row.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Update("public.campsites").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete campsite query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete campsite failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetOperatorID(ctx context.Context, id string) (string, error) {
	query, args, err := psql.Select("operator_id").
		From("public.campsites").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get operator query failed: %w", err)
	}

	var operatorID string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&operatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get campsite operator failed: %w", err)
	}
	return operatorID, nil
}
