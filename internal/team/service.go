package team

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/user"
)

// OperatorLookup resolves the operator that owns a campsite.
type OperatorLookup interface {
	GetOperatorID(ctx context.Context, campSiteID string) (string, error)
}

// UserLookup finds invitees by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Authorizer is the single authorization entry point for campsite management actions.
type Authorizer interface {
	// Permissions returns what userID may do on campSiteID. The operator holds every permission.
	Permissions(ctx context.Context, campSiteID, userID string) (PermissionSet, error)
	// Authorize returns ErrPermissionDenied unless userID holds perm on campSiteID.
	Authorize(ctx context.Context, campSiteID, userID, perm string) error
}

// InviteRequest describes a new invitation.
type InviteRequest struct {
	Email       string
	Role        string
	Permissions []string
}

// UpdateMemberRequest changes a member's grants. Nil fields are left untouched.
type UpdateMemberRequest struct {
	Role        *string
	Permissions *[]string
}

// Service defines team management operations.
type Service interface {
	Authorizer

	ListMembers(ctx context.Context, campSiteID, actorID string) ([]*Member, error)
	Invite(ctx context.Context, campSiteID, actorID string, req InviteRequest) (*Member, error)
	ListInvitations(ctx context.Context, userID string) ([]*Member, error)
	Accept(ctx context.Context, memberID, userID string) (*Member, error)
	Decline(ctx context.Context, memberID, userID string) (*Member, error)
	UpdateMember(ctx context.Context, campSiteID, memberID, actorID string, req UpdateMemberRequest) (*Member, error)
	RemoveMember(ctx context.Context, campSiteID, memberID, actorID string) error
}

type service struct {
	repo      Repository
	operators OperatorLookup
	users     UserLookup
	now       func() time.Time
}

// NewService creates a new team Service.
func NewService(repo Repository, operators OperatorLookup, users UserLookup) Service {
	return &service{
		repo:      repo,
		operators: operators,
		users:     users,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Permissions(ctx context.Context, campSiteID, userID string) (PermissionSet, error) {
	operatorID, err := s.operators.GetOperatorID(ctx, campSiteID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return PermissionSet{}, nil
	}
	if operatorID == userID {
		return EffectivePermissions(RoleOwner, nil), nil
	}

	m, err := s.repo.GetByCampSiteAndUser(ctx, campSiteID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PermissionSet{}, nil
		}
		return nil, err
	}
	return m.EffectivePermissions(), nil
}

func (s *service) Authorize(ctx context.Context, campSiteID, userID, perm string) error {
	perms, err := s.Permissions(ctx, campSiteID, userID)
	if err != nil {
		return err
	}
	if !perms.Has(perm) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) ListMembers(ctx context.Context, campSiteID, actorID string) ([]*Member, error) {
	if err := s.Authorize(ctx, campSiteID, actorID, PermTeamView); err != nil {
		return nil, err
	}
	return s.repo.ListByCampSite(ctx, campSiteID)
}

func (s *service) Invite(ctx context.Context, campSiteID, actorID string, req InviteRequest) (*Member, error) {
	if err := s.Authorize(ctx, campSiteID, actorID, PermTeamManage); err != nil {
		return nil, err
	}
	role, perms, err := validateGrant(req.Role, req.Permissions)
	if err != nil {
		return nil, err
	}

	invitee, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	operatorID, err := s.operators.GetOperatorID(ctx, campSiteID)
	if err != nil {
		return nil, err
	}
	if invitee.ID == operatorID {
		return nil, ErrAlreadyMember
	}

	m := &Member{
		CampSiteID:  campSiteID,
		UserID:      invitee.ID,
		Email:       invitee.Email,
		DisplayName: invitee.DisplayName,
		Role:        role,
		Permissions: perms,
		InvitedBy:   actorID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) ListInvitations(ctx context.Context, userID string) ([]*Member, error) {
	return s.repo.ListInvitations(ctx, userID)
}

func (s *service) Accept(ctx context.Context, memberID, userID string) (*Member, error) {
	return s.respond(ctx, memberID, func(m *Member) error {
		return m.Accept(userID, s.now())
	})
}

func (s *service) Decline(ctx context.Context, memberID, userID string) (*Member, error) {
	return s.respond(ctx, memberID, func(m *Member) error {
		return m.Decline(userID)
	})
}

func (s *service) respond(ctx context.Context, memberID string, transition func(*Member) error) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := transition(m); err != nil {
		return nil, err
	}
	if err := s.repo.CloseInvitation(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) UpdateMember(ctx context.Context, campSiteID, memberID, actorID string, req UpdateMemberRequest) (*Member, error) {
	if err := s.Authorize(ctx, campSiteID, actorID, PermTeamManage); err != nil {
		return nil, err
	}

	m, err := s.getActiveMember(ctx, campSiteID, memberID)
	if err != nil {
		return nil, err
	}

	role, perms := m.Role, m.Permissions
	if req.Role != nil {
		role = *req.Role
	}
	if req.Permissions != nil {
		perms = *req.Permissions
	}
	role, perms, err = validateGrant(role, perms)
	if err != nil {
		return nil, err
	}

	m.Role = role
	m.Permissions = perms
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) RemoveMember(ctx context.Context, campSiteID, memberID, actorID string) error {
	if err := s.Authorize(ctx, campSiteID, actorID, PermTeamManage); err != nil {
		return err
	}

	m, err := s.getActiveMember(ctx, campSiteID, memberID)
	if err != nil {
		return err
	}
	if err := m.Deactivate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *service) getActiveMember(ctx context.Context, campSiteID, memberID string) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.CampSiteID != campSiteID || !m.IsActive {
		return nil, ErrNotFound
	}
	return m, nil
}

// validateGrant normalises a role and explicit permission list for storage.
// Unlike resolution, writes reject unknown codes instead of dropping them.
func validateGrant(role string, perms []string) (string, []string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == RoleOwner {
		return "", nil, ErrOwnerRole
	}
	if !IsValidRole(role) {
		return "", nil, ErrInvalidRole
	}

	var clean []string
	for _, p := range perms {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" || slices.Contains(clean, p) {
			continue
		}
		if !IsValidPermission(p) {
			return "", nil, ErrInvalidPermission
		}
		clean = append(clean, p)
	}
	return role, clean, nil
}
