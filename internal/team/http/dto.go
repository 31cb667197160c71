package http

import (
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

// MemberURI binds /campsites/:id/team/:member_id.
type MemberURI struct {
	CampSiteID string `uri:"id" binding:"required,uuid"`
	MemberID   string `uri:"member_id" binding:"required,uuid"`
}

// InviteRequest is the payload for POST /campsites/:id/team.
type InviteRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Role        string   `json:"role" binding:"required"`
	Permissions []string `json:"permissions"`
}

// UpdateMemberRequest is the payload for PATCH /campsites/:id/team/:member_id.
type UpdateMemberRequest struct {
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
}

type MemberResponse struct {
	ID                   string     `json:"id"`
	CampSiteID           string     `json:"campsite_id"`
	UserID               string     `json:"user_id"`
	Email                string     `json:"email"`
	DisplayName          *string    `json:"display_name"`
	Role                 string     `json:"role"`
	Permissions          []string   `json:"permissions"`
	EffectivePermissions []string   `json:"effective_permissions"`
	State                string     `json:"state"`
	InvitedAt            time.Time  `json:"invited_at"`
	AcceptedAt           *time.Time `json:"accepted_at"`
}

func NewMemberResponse(m *team.Member) MemberResponse {
	perms := m.Permissions
	if perms == nil {
		perms = []string{}
	}
	return MemberResponse{
		ID:                   m.ID,
		CampSiteID:           m.CampSiteID,
		UserID:               m.UserID,
		Email:                m.Email,
		DisplayName:          m.DisplayName,
		Role:                 m.Role,
		Permissions:          perms,
		EffectivePermissions: team.EffectivePermissions(m.Role, m.Permissions),
		State:                string(m.State()),
		InvitedAt:            m.InvitedAt,
		AcceptedAt:           m.AcceptedAt,
	}
}

func newMemberResponses(members []*team.Member) []MemberResponse {
	items := make([]MemberResponse, len(members))
	for i, m := range members {
		items[i] = NewMemberResponse(m)
	}
	return items
}

// PermissionsResponse lists the caller's effective permissions on a campsite.
type PermissionsResponse struct {
	CampSiteID  string   `json:"campsite_id"`
	Permissions []string `json:"permissions"`
}
