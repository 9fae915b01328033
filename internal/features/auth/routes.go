package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches auth endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated gin.HandlerFunc) {
	authGroup := router.Group("/auth")

	authGroup.POST("/register", handler.Register)
	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout)
	authGroup.POST("/forgot-password/verify", handler.ForgotPasswordVerify)
	authGroup.POST("/forgot-password/reset", handler.ForgotPasswordReset)
	authGroup.GET("/session", authenticated, handler.Session)
}
