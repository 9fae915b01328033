package category

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches category endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.GET("/categories", handler.List)
}
