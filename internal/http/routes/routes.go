package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/auth"
	"github.com/eduflow/eduflow-server/internal/features/category"
	"github.com/eduflow/eduflow-server/internal/features/comment"
	"github.com/eduflow/eduflow-server/internal/features/completion"
	"github.com/eduflow/eduflow-server/internal/features/content"
	"github.com/eduflow/eduflow-server/internal/features/engagement"
	"github.com/eduflow/eduflow-server/internal/features/profile"
	"github.com/eduflow/eduflow-server/internal/features/upload"
	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/config"
	"github.com/eduflow/eduflow-server/pkg/health"
	"github.com/eduflow/eduflow-server/pkg/session"
	"github.com/eduflow/eduflow-server/pkg/storage"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, sessions session.Store, storageClient *storage.Client) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.Version)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")

	authMiddleware := middleware.New(db, sessions, logger)
	authenticated := authMiddleware.Authenticate()
	optionalAuth := authMiddleware.OptionalAuthenticate()
	creatorOnly := []gin.HandlerFunc{authenticated, authMiddleware.RequireRoles(types.RoleCreator)}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authHandler := auth.NewHandler(db, sessions, sessionTTL, logger)
	auth.RegisterRoutes(api, authHandler, authenticated)

	profileHandler := profile.NewHandler(db, logger)
	profile.RegisterRoutes(api, profileHandler, authenticated)

	categoryHandler := category.NewHandler(db, logger)
	category.RegisterRoutes(api, categoryHandler)

	contentHandler := content.NewHandler(db, logger)
	content.RegisterRoutes(api, contentHandler, optionalAuth, creatorOnly)

	commentHandler := comment.NewHandler(db, logger)
	comment.RegisterRoutes(api, commentHandler, authenticated)

	completionHandler := completion.NewHandler(db, logger)
	completion.RegisterRoutes(api, completionHandler, authenticated)

	engagementHandler := engagement.NewHandler(db, logger)
	engagement.RegisterRoutes(api, engagementHandler, authenticated, creatorOnly)

	uploadHandler := upload.NewHandler(storageClient, logger)
	upload.RegisterRoutes(api, uploadHandler, authenticated)
}
