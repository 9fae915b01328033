package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/pkg/types"
)

// Profile represents a registered account.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"username"`
	Email     string     `gorm:"type:varchar(255);not null" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName  string     `gorm:"type:varchar(255);not null;column:full_name" json:"fullName"`
	AvatarURL string     `gorm:"type:text;column:avatar_url" json:"avatarUrl"`
	Role      types.Role `gorm:"type:varchar(20);not null;default:'learner'" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the default table name.
func (Profile) TableName() string { return "profiles" }

const minPasswordLength = 6

// DefaultAvatarURL returns the generated avatar assigned at registration.
func DefaultAvatarURL(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username)
}

// CreateInput carries data for registering a profile.
type CreateInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     types.Role
}

// UpdateInput carries the editable profile fields. Password is only
// changed when non-empty.
type UpdateInput struct {
	Email     string
	FullName  string
	AvatarURL string
	Password  string
}

// Get retrieves a profile by id.
func Get(db *gorm.DB, id uuid.UUID) (Profile, error) {
	var p Profile
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return p, ErrProfileNotFound
		}
		return p, err
	}
	return p, nil
}

// GetByUsername retrieves a profile by its unique username.
func GetByUsername(db *gorm.DB, username string) (Profile, error) {
	var p Profile
	if err := db.First(&p, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return p, ErrProfileNotFound
		}
		return p, err
	}
	return p, nil
}

// Create registers a new profile. The avatar defaults to a generated
// image seeded with the username when none is supplied.
func Create(db *gorm.DB, input CreateInput) (Profile, error) {
	if input.Username == "" || input.Password == "" {
		return Profile{}, ErrCredentialsRequired
	}

	role := input.Role
	if !role.Valid() {
		role = types.RoleLearner
	}

	p := Profile{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FullName:  input.FullName,
		AvatarURL: DefaultAvatarURL(input.Username),
		Role:      role,
	}

	if err := db.Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return Profile{}, ErrUsernameTaken
		}
		return Profile{}, err
	}

	return p, nil
}

// Update applies the editable fields to an existing profile.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Profile, error) {
	p, err := Get(db, id)
	if err != nil {
		return Profile{}, err
	}

	p.Email = input.Email
	p.FullName = input.FullName
	if input.AvatarURL != "" {
		p.AvatarURL = input.AvatarURL
	}
	if input.Password != "" {
		p.Password = input.Password
	}

	if err := db.Save(&p).Error; err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Authenticate checks a username/password pair against the stored row.
// Passwords are kept and compared verbatim to match the existing user
// base; see the deployment notes before exposing this publicly.
func Authenticate(db *gorm.DB, username, password string) (Profile, error) {
	p, err := GetByUsername(db, username)
	if err != nil {
		if err == ErrProfileNotFound {
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, err
	}

	if p.Password != password {
		return Profile{}, ErrInvalidCredentials
	}
	return p, nil
}

// FindByIdentity matches a profile by its username and email pair,
// trimming both before matching. This is the identity check of the
// password reset flow, which runs without a session.
func FindByIdentity(db *gorm.DB, username, email string) (Profile, error) {
	var p Profile
	err := db.First(&p, "username = ? AND email = ?",
		strings.TrimSpace(username), strings.TrimSpace(email)).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return p, ErrProfileNotFound
		}
		return p, err
	}
	return p, nil
}

// ValidateNewPassword checks a reset pair: both entries must match and
// the new password must be at least six characters.
func ValidateNewPassword(newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ResetPassword overwrites the stored password for a profile. The
// update also bumps updated_at.
func ResetPassword(db *gorm.DB, id uuid.UUID, newPassword string) error {
	result := db.Model(&Profile{}).Where("id = ?", id).Update("password", newPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}
