package profile

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/response"
)

// Handler processes profile HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a profile handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Me returns the authenticated profile.
func (h *Handler) Me(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	response.Success(c, http.StatusOK, current, "", nil)
}

// UpdateMe applies changes to the authenticated profile.
func (h *Handler) UpdateMe(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		Email     string `json:"email" binding:"required,email"`
		FullName  string `json:"fullName" binding:"required"`
		AvatarURL string `json:"avatarUrl"`
		Password  string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	updated, err := Update(h.db, current.ID, UpdateInput{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err, "failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, updated, "Profile updated.", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrProfileNotFound):
		status = http.StatusNotFound
		message = "Profile not found."
	case errors.Is(err, ErrUsernameTaken):
		status = http.StatusConflict
		message = "Username already taken."
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid username or password."
	case errors.Is(err, ErrCredentialsRequired):
		status = http.StatusBadRequest
		message = "Username and password are required."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
