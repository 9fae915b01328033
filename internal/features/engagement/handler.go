package engagement

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/content"
	"github.com/eduflow/eduflow-server/internal/features/profile"
	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/response"
)

// Handler processes engagement HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs an engagement handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Stats returns the engagement panel for an owned content.
func (h *Handler) Stats(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	row, err := content.Get(h.db, contentID)
	if err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	if row.AuthorID != current.ID {
		response.ErrorWithLog(h.logger, c, http.StatusForbidden, "Only the author can view engagement stats.", nil)
		return
	}

	stats, err := StatsForContent(h.db, row)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load engagement stats", err)
		return
	}

	response.Success(c, http.StatusOK, stats, "", nil)
}

// DashboardHome returns the role-dependent dashboard payload.
func (h *Handler) DashboardHome(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	p, err := profile.Get(h.db, current.ID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}

	dash, err := BuildDashboard(h.db, p)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to build dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, dash, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	if errors.Is(err, content.ErrContentNotFound) {
		status = http.StatusNotFound
		message = "Content not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
