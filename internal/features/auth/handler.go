package auth

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/profile"
	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/response"
	"github.com/eduflow/eduflow-server/pkg/session"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db         *gorm.DB
	sessions   session.Store
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewHandler constructs an auth handler instance.
func NewHandler(db *gorm.DB, sessions session.Store, sessionTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		db:         db,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type sessionPayload struct {
	Token   string          `json:"token"`
	Profile profile.Profile `json:"profile"`
}

// Register creates a profile and opens a session for it.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid registration payload", err)
		return
	}

	p, err := profile.Create(h.db, profile.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     types.Role(req.Role),
	})
	if err != nil {
		h.respondError(c, err, "failed to register")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), p.ID.String(), h.sessionTTL)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to open session", err)
		return
	}

	response.Created(c, sessionPayload{Token: token, Profile: p}, "Account created.")
}

// Login validates credentials and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	p, err := profile.Authenticate(h.db, req.Username, req.Password)
	if err != nil {
		h.respondError(c, err, "failed to log in")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), p.ID.String(), h.sessionTTL)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to open session", err)
		return
	}

	response.Success(c, http.StatusOK, sessionPayload{Token: token, Profile: p}, "Logged in.", nil)
}

// Logout destroys the current session. Succeeds even when no session
// was active.
func (h *Handler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)
	if token != "" {
		if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to close session", err)
			return
		}
	}

	response.Success(c, http.StatusOK, true, "Logged out.", nil)
}

// Session rehydrates the profile for the presented token. This is the
// single lookup clients perform at startup.
func (h *Handler) Session(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Session expired or invalid", nil)
		return
	}

	p, err := profile.Get(h.db, current.ID)
	if err != nil {
		h.respondError(c, err, "failed to load session profile")
		return
	}

	response.Success(c, http.StatusOK, p, "", nil)
}

type verifyPayload struct {
	ProfileID string `json:"profileId"`
}

// ForgotPasswordVerify matches a username and email pair to a profile.
// This is the identity check ahead of a password reset; no session is
// required.
func (h *Handler) ForgotPasswordVerify(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid verification payload", err)
		return
	}

	p, err := profile.FindByIdentity(h.db, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.ErrorWithLog(h.logger, c, http.StatusNotFound, "No profile matches that username and email.", err)
			return
		}
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to verify profile", err)
		return
	}

	response.Success(c, http.StatusOK, verifyPayload{ProfileID: p.ID.String()}, "", nil)
}

// ForgotPasswordReset overwrites the password for a profile verified in
// the previous step.
func (h *Handler) ForgotPasswordReset(c *gin.Context) {
	var req struct {
		ProfileID       string `json:"profileId" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid reset payload", err)
		return
	}

	id, err := uuid.Parse(req.ProfileID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid profile id", err)
		return
	}

	if err := profile.ValidateNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		h.respondError(c, err, "failed to reset password")
		return
	}

	if err := profile.ResetPassword(h.db, id, req.NewPassword); err != nil {
		h.respondError(c, err, "failed to reset password")
		return
	}

	response.Success(c, http.StatusOK, true, "Password updated.", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, profile.ErrUsernameTaken):
		status = http.StatusConflict
		message = "Username already taken."
	case errors.Is(err, profile.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid username or password."
	case errors.Is(err, profile.ErrCredentialsRequired):
		status = http.StatusBadRequest
		message = "Username and password are required."
	case errors.Is(err, profile.ErrProfileNotFound):
		status = http.StatusNotFound
		message = "Profile not found."
	case errors.Is(err, profile.ErrPasswordMismatch):
		status = http.StatusBadRequest
		message = "Passwords do not match."
	case errors.Is(err, profile.ErrPasswordTooShort):
		status = http.StatusBadRequest
		message = "Password must be at least 6 characters."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
