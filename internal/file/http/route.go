package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers photo routes
func RegisterRoutes(r gin.IRouter, handler *FileHandler, authMiddleware gin.HandlerFunc) {
	files := r.Group("/files")
	{
		files.GET("/:id", handler.ServeFile)
		files.GET("/:id/thumbnail", handler.ServeThumbnail)
	}

	photos := r.Group("/campsites/:id/photos")
	photos.GET("", handler.List)

	manage := photos.Group("")
	manage.Use(authMiddleware)
	{
		manage.POST("", handler.Upload)
		manage.DELETE("/:photo_id", handler.Delete)
	}
}
