package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers campsite routes.
// Search and detail accept anonymous callers; optionalAuth identifies signed-in ones.
func RegisterRoutes(g *gin.RouterGroup, h *CampSiteHandler, authMiddleware, optionalAuth gin.HandlerFunc) {
	campGroup := g.Group("/campsites")

	// === Public Routes ===
	publicGroup := campGroup.Group("")
	publicGroup.Use(optionalAuth)
	{
		publicGroup.GET("", h.List)
		publicGroup.GET("/count", h.Count)
		publicGroup.GET("/:id", h.Get)
	}

	// === Authenticated Routes ===
	authGroup := campGroup.Group("")
	authGroup.Use(authMiddleware)
	{
		authGroup.GET("/filters/last", h.LastFilters)
		authGroup.POST("", h.Create)
		authGroup.PATCH("/:id", h.Update)  // CAMPSITE_EDIT
		authGroup.DELETE("/:id", h.Delete) // CAMPSITE_DELETE
	}
}
