package content

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches content endpoints to the router. Detail and
// recommendations take optional auth so anonymous visits still count a
// view; authoring routes are restricted to creators.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, optionalAuth gin.HandlerFunc, creatorOnly []gin.HandlerFunc) {
	contents := router.Group("/contents")

	contents.GET("", handler.Browse)
	contents.GET("/mine", append(creatorOnly, handler.Mine)...)
	contents.GET("/:id", optionalAuth, handler.Detail)
	contents.GET("/:id/recommendations", handler.Recommendations)

	contents.POST("", append(creatorOnly, handler.Create)...)
	contents.PUT("/:id", append(creatorOnly, handler.Update)...)
	contents.POST("/:id/publish", append(creatorOnly, handler.Publish)...)
	contents.DELETE("/:id", append(creatorOnly, handler.Delete)...)
}
