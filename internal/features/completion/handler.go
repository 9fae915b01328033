package completion

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/content"
	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/response"
)

// Handler processes completion HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a completion handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type markResult struct {
	Completed        bool `json:"completed"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
}

// Mark records a completion for the current user. Marking twice is
// reported as success with the alreadyCompleted flag set.
func (h *Handler) Mark(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	if _, err := content.Get(h.db, contentID); err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	if _, err := Mark(h.db, current.ID, contentID); err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			response.Success(c, http.StatusOK, markResult{Completed: true, AlreadyCompleted: true}, "Already completed.", nil)
			return
		}
		h.respondError(c, err, "failed to mark completion")
		return
	}

	response.Created(c, markResult{Completed: true}, "Marked complete.")
}

// Me reports whether the current user has completed the content.
func (h *Handler) Me(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	completed, err := IsCompleted(h.db, current.ID, contentID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load completion", err)
		return
	}

	response.Success(c, http.StatusOK, markResult{Completed: completed, AlreadyCompleted: completed}, "", nil)
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
