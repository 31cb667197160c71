package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability and booking routes.
// Availability accepts anonymous callers; optionalAuth lets team members see unpublished campsites.
func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler, authMiddleware, optionalAuth gin.HandlerFunc) {
	g.GET("/campsites/:id/availability", optionalAuth, h.Availability)

	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/status", h.UpdateStatus)
	}
}
