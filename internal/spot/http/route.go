package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers spot and capacity routes under a campsite.
func RegisterRoutes(g *gin.RouterGroup, h *SpotHandler, authMiddleware gin.HandlerFunc) {
	campGroup := g.Group("/campsites/:id")
	{
		campGroup.GET("/capacity", h.Capacity)
		campGroup.GET("/spots", h.List)
		campGroup.GET("/spots/:spot_id", h.Get)
	}

	manageGroup := campGroup.Group("/spots")
	manageGroup.Use(authMiddleware)
	{
		manageGroup.POST("", h.Create)
		manageGroup.PATCH("/:spot_id", h.Update)
		manageGroup.DELETE("/:spot_id", h.Delete)
	}
}
