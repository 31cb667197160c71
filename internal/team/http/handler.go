package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

type TeamHandler struct {
	service team.Service
}

func NewHandler(service team.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

// ListMembers returns invited and accepted members of a campsite team.
// Access Control: TEAM_VIEW.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": newMemberResponses(members)})
}

// Invite sends an invitation to an existing user.
// Access Control: TEAM_MANAGE.
func (h *TeamHandler) Invite(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body InviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	m, err := h.service.Invite(c.Request.Context(), uri.ID, auth.GetUserID(c), team.InviteRequest{
		Email:       body.Email,
		Role:        body.Role,
		Permissions: body.Permissions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMemberResponse(m))
}

// UpdateMember changes the role or explicit permissions of a member.
// Access Control: TEAM_MANAGE.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	var uri MemberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	m, err := h.service.UpdateMember(c.Request.Context(), uri.CampSiteID, uri.MemberID, auth.GetUserID(c), team.UpdateMemberRequest{
		Role:        body.Role,
		Permissions: body.Permissions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMemberResponse(m))
}

// RemoveMember deactivates a member or withdraws a pending invitation.
// Access Control: TEAM_MANAGE.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	var uri MemberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), uri.CampSiteID, uri.MemberID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MyPermissions returns the caller's effective permissions on a campsite.
func (h *TeamHandler) MyPermissions(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	perms, err := h.service.Permissions(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, PermissionsResponse{CampSiteID: uri.ID, Permissions: perms})
}

// ListInvitations returns the caller's open invitations.
func (h *TeamHandler) ListInvitations(c *gin.Context) {
	members, err := h.service.ListInvitations(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": newMemberResponses(members)})
}

// Accept accepts an invitation addressed to the caller.
func (h *TeamHandler) Accept(c *gin.Context) {
	h.respond(c, h.service.Accept)
}

// Decline declines an invitation addressed to the caller.
func (h *TeamHandler) Decline(c *gin.Context) {
	h.respond(c, h.service.Decline)
}

func (h *TeamHandler) respond(c *gin.Context, action func(ctx context.Context, memberID, userID string) (*team.Member, error)) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	m, err := action(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMemberResponse(m))
}
