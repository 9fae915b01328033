package profile

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches profile endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc) {
	profiles := router.Group("/profiles")

	profiles.GET("/me", authenticated, handler.Me)
	profiles.PUT("/me", authenticated, handler.UpdateMe)
}
