package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers authentication and profile routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	userGroup := g.Group("/users")
	userGroup.Use(authMiddleware)
	{
		userGroup.GET("/me", h.Me)
	}
}
