package file

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
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var photoColumns = []string{
	"id", "campsite_id", "user_id", "filename", "storage_path", "thumbnail_path",
	"content_type", "size", "created_at",
}

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByCampSite(ctx context.Context, campSiteID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Photo) error {
	query, args, err := psql.Insert("public.campsite_photos").
		Columns(photoColumns...).
		Values(p.ID, p.CampSiteID, p.UserID, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert photo query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return campsite.ErrNotFound
		}
		return fmt.Errorf("create photo record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	query, args, err := psql.Select(photoColumns...).
		From("public.campsite_photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get photo query failed: %w", err)
	}

	p, err := scanPhoto(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get photo failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) ListByCampSite(ctx context.Context, campSiteID string) ([]*Photo, error) {
	query, args, err := psql.Select(photoColumns...).
		From("public.campsite_photos").
		Where(squirrel.Eq{"campsite_id": campSiteID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list photos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo failed: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.campsite_photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete photo query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete photo record failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (*Photo, error) {
	p := &Photo{}
	err := row.Scan(
		&p.ID,
		&p.CampSiteID,
		&p.UserID,
		&p.Filename,
		&p.StoragePath,
		&p.ThumbnailPath,
		&p.ContentType,
		&p.Size,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
