package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers team management and invitation routes.
func RegisterRoutes(g *gin.RouterGroup, h *TeamHandler, authMiddleware gin.HandlerFunc) {
	campGroup := g.Group("/campsites/:id")
	campGroup.Use(authMiddleware)
	{
		campGroup.GET("/permissions/me", h.MyPermissions)

		campGroup.GET("/team", h.ListMembers)                // TEAM_VIEW
		campGroup.POST("/team", h.Invite)                    // TEAM_MANAGE
		campGroup.PATCH("/team/:member_id", h.UpdateMember)  // TEAM_MANAGE
		campGroup.DELETE("/team/:member_id", h.RemoveMember) // TEAM_MANAGE
	}

	inviteGroup := g.Group("/team/invitations")
	inviteGroup.Use(authMiddleware)
	{
		inviteGroup.GET("", h.ListInvitations)
		inviteGroup.POST("/:id/accept", h.Accept)
		inviteGroup.POST("/:id/decline", h.Decline)
	}
}
