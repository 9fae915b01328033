package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/pkg/response"
	"github.com/eduflow/eduflow-server/pkg/session"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Profile is the authenticated account as seen by middleware. It maps
// the profiles table directly so this package does not depend on the
// feature packages it guards.
type Profile struct {
	ID        uuid.UUID  `gorm:"column:id;primaryKey" json:"id"`
	Username  string     `gorm:"column:username" json:"username"`
	Email     string     `gorm:"column:email" json:"email"`
	FullName  string     `gorm:"column:full_name" json:"fullName"`
	AvatarURL string     `gorm:"column:avatar_url" json:"avatarUrl"`
	Role      types.Role `gorm:"column:role" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for the middleware profile view.
func (Profile) TableName() string {
	return "profiles"
}

// AuthMiddleware resolves bearer tokens to profiles via the session store.
type AuthMiddleware struct {
	db       *gorm.DB
	sessions session.Store
	logger   *slog.Logger
}

// New constructs the auth middleware.
func New(db *gorm.DB, sessions session.Store, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		db:       db,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate validates the bearer token and loads the profile into
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.ensureAuthenticated(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles through. Admin always has
// access.
func (m *AuthMiddleware) RequireRoles(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := GetProfileFromContext(c)
		if !ok {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
			c.Abort()
			return
		}

		if current.Role == types.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if current.Role == role {
				c.Next()
				return
			}
		}

		response.ErrorWithLog(m.logger, c, http.StatusForbidden, "Access denied: Insufficient permissions.", nil)
		c.Abort()
	}
}

// GetProfileFromContext retrieves the authenticated profile from the
// gin context.
func GetProfileFromContext(c *gin.Context) (*Profile, bool) {
	v, exists := c.Get("profile")
	if !exists {
		return nil, false
	}

	if p, ok := v.(*Profile); ok && p != nil {
		return p, true
	}
	return nil, false
}

// SessionToken extracts the bearer token from the Authorization header.
// Empty when absent or malformed.
func SessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func (m *AuthMiddleware) ensureAuthenticated(c *gin.Context) (*Profile, bool) {
	if p, ok := GetProfileFromContext(c); ok {
		return p, true
	}

	token := SessionToken(c)
	if token == "" {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No session token provided", nil)
		c.Abort()
		return nil, false
	}

	profileID, err := m.sessions.Get(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Session expired or invalid", nil)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		c.Abort()
		return nil, false
	}

	id, err := uuid.Parse(profileID)
	if err != nil {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Session expired or invalid", err)
		c.Abort()
		return nil, false
	}

	var p Profile
	if err := m.db.WithContext(c.Request.Context()).First(&p, "id = ?", id).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Profile no longer exists", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		c.Abort()
		return nil, false
	}

	c.Set("profile", &p)
	c.Set("profileId", p.ID)
	return &p, true
}

// OptionalAuthenticate loads the profile when a valid token is present
// but lets anonymous requests through. Used by the detail page, where a
// view is counted either way but history is only recorded for known
// viewers.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		profileID, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		id, err := uuid.Parse(profileID)
		if err != nil {
			c.Next()
			return
		}

		var p Profile
		if err := m.db.WithContext(c.Request.Context()).First(&p, "id = ?", id).Error; err == nil {
			c.Set("profile", &p)
			c.Set("profileId", p.ID)
		}

		c.Next()
	}
}
