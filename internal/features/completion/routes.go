package completion

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches completion endpoints under a content.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc) {
	completions := router.Group("/contents/:id/completions")

	completions.POST("", authenticated, handler.Mark)
	completions.GET("/me", authenticated, handler.Me)
}
