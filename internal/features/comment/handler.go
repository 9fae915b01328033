package comment

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

// Handler processes comment HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a comment handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns all comments on a content, newest first.
func (h *Handler) List(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	comments, err := ListForContent(h.db, contentID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load comments", err)
		return
	}

	response.Success(c, http.StatusOK, comments, "", nil)
}

// Create posts a new comment on a content.
func (h *Handler) Create(c *gin.Context) {
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

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid comment payload", err)
		return
	}

	if _, err := content.Get(h.db, contentID); err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	comment, err := Create(h.db, contentID, current.ID, req.Message)
	if err != nil {
		h.respondError(c, err, "failed to create comment")
		return
	}

	response.Created(c, comment, "")
}

// Delete removes a comment. Allowed for the comment author and for the
// author of the content it sits on.
func (h *Handler) Delete(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid comment id", err)
		return
	}

	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	comment, err := Get(h.db, commentID)
	if err != nil {
		h.respondError(c, err, "failed to load comment")
		return
	}

	row, err := content.Get(h.db, contentID)
	if err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	if current.ID != comment.UserID && current.ID != row.AuthorID {
		response.ErrorWithLog(h.logger, c, http.StatusForbidden, "not authorized", nil)
		return
	}

	if err := Delete(h.db, commentID, contentID); err != nil {
		h.respondError(c, err, "failed to delete comment")
		return
	}

	response.Success(c, http.StatusOK, true, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrCommentNotFound):
		status = http.StatusNotFound
		message = "Comment not found."
	case errors.Is(err, ErrMessageRequired):
		status = http.StatusBadRequest
		message = "Comment message is required."
	case errors.Is(err, content.ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
