package engagement

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches engagement endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc, creatorOnly []gin.HandlerFunc) {
	router.GET("/contents/:id/stats", append(creatorOnly, handler.Stats)...)
	router.GET("/dashboard", authenticated, handler.DashboardHome)
}
