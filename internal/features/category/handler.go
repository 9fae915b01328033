package category

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/pkg/response"
)

// Handler processes category HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a category handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns the full category reference list.
func (h *Handler) List(c *gin.Context) {
	categories, err := List(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load categories", err)
		return
	}

	response.Success(c, http.StatusOK, categories, "", nil)
}
