package upload

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches upload endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc) {
	router.POST("/uploads/:bucket", authenticated, handler.Upload)
	router.DELETE("/uploads/:bucket/:object", authenticated, handler.Remove)
}
