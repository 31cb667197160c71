package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence for team memberships.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByCampSiteAndUser(ctx context.Context, campSiteID, userID string) (*Member, error)
	// ListByCampSite returns invited and accepted members.
	ListByCampSite(ctx context.Context, campSiteID string) ([]*Member, error)
	// ListInvitations returns the open invitations addressed to userID.
	ListInvitations(ctx context.Context, userID string) ([]*Member, error)
	// Create inserts an invitation. A previously declined or removed membership is reopened.
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	// CloseInvitation stores the invitee's answer. It fails with ErrInvitationClosed
	// unless the invitation is still open.
	CloseInvitation(ctx context.Context, m *Member) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectMember() squirrel.SelectBuilder {
	return psql.Select(
		"m.id", "m.campsite_id", "m.user_id", "u.email", "u.display_name",
		"m.role", "m.permissions", "m.is_active", "m.invited_by", "m.invited_at", "m.accepted_at",
	).
		From("public.team_members m").
		Join("public.users u ON m.user_id = u.id")
}

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	var permissions *string
	if err := row.Scan(
		&m.ID, &m.CampSiteID, &m.UserID, &m.Email, &m.DisplayName,
		&m.Role, &permissions, &m.IsActive, &m.InvitedBy, &m.InvitedAt, &m.AcceptedAt,
	); err != nil {
		return nil, err
	}
	if permissions != nil && *permissions != "" {
		m.Permissions = strings.Split(*permissions, ",")
	}
	return &m, nil
}

// encodePermissions stores an empty list as NULL so the role defaults apply.
func encodePermissions(perms []string) *string {
	if len(perms) == 0 {
		return nil
	}
	joined := strings.Join(perms, ",")
	return &joined
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Member, error) {
	query, args, err := selectMember().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get member query failed: %w", err)
	}

	m, err := scanMember(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get member failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	return r.getOne(ctx, squirrel.Eq{"m.id": id})
}

func (r *pgxRepository) GetByCampSiteAndUser(ctx context.Context, campSiteID, userID string) (*Member, error) {
	return r.getOne(ctx, squirrel.Eq{"m.campsite_id": campSiteID, "m.user_id": userID})
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*Member, error) {
	query, args, err := selectMember().Where(where).OrderBy("m.invited_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member failed: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgxRepository) ListByCampSite(ctx context.Context, campSiteID string) ([]*Member, error) {
	return r.list(ctx, squirrel.Eq{"m.campsite_id": campSiteID, "m.is_active": true})
}

func (r *pgxRepository) ListInvitations(ctx context.Context, userID string) ([]*Member, error) {
	return r.list(ctx, squirrel.Eq{"m.user_id": userID, "m.is_active": true, "m.accepted_at": nil})
}

func (r *pgxRepository) Create(ctx context.Context, m *Member) error {
	query, args, err := psql.Insert("public.team_members").
		Columns("campsite_id", "user_id", "role", "permissions", "is_active", "invited_by", "invited_at").
		Values(m.CampSiteID, m.UserID, m.Role, encodePermissions(m.Permissions), true, m.InvitedBy, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (campsite_id, user_id) DO UPDATE SET
			role = EXCLUDED.role, permissions = EXCLUDED.permissions, is_active = true,
			invited_by = EXCLUDED.invited_by, invited_at = EXCLUDED.invited_at, accepted_at = NULL
			WHERE team_members.is_active = false
			RETURNING id, invited_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create member query failed: %w", err)
	}

	var invitedAt time.Time
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &invitedAt); err != nil {
		// The conflict clause skips active rows, so no row back means a live membership exists.
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAlreadyMember
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("create member failed: %w", err)
	}
	m.IsActive = true
	m.InvitedAt = invitedAt
	m.AcceptedAt = nil
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, m *Member) error {
	query, args, err := psql.Update("public.team_members").
		Set("role", m.Role).
		Set("permissions", encodePermissions(m.Permissions)).
		Set("is_active", m.IsActive).
		Set("accepted_at", m.AcceptedAt).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update member query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CloseInvitation(ctx context.Context, m *Member) error {
	query, args, err := psql.Update("public.team_members").
		Set("is_active", m.IsActive).
		Set("accepted_at", m.AcceptedAt).
		Where(squirrel.Eq{"id": m.ID, "is_active": true, "accepted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build close invitation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("close invitation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvitationClosed
	}
	return nil
}
