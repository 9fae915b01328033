package comment

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches comment endpoints under a content.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc) {
	comments := router.Group("/contents/:id/comments")

	comments.GET("", handler.List)
	comments.POST("", authenticated, handler.Create)
	comments.DELETE("/:commentId", authenticated, handler.Delete)
}
