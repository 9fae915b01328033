// Package completion tracks which contents a user has marked complete.
package completion

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Completion marks a content as finished by a user. The composite
// unique index enforces at most one row per pair.
type Completion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_completion_user_content,priority:1" json:"userId"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;column:content_id;uniqueIndex:idx_completion_user_content,priority:2" json:"contentId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the default table name.
func (Completion) TableName() string { return "completions" }

// Mark records a completion. Marking an already-completed content
// reports ErrAlreadyCompleted instead of creating a second row.
func Mark(db *gorm.DB, userID, contentID uuid.UUID) (Completion, error) {
	comp := Completion{
		UserID:    userID,
		ContentID: contentID,
	}

	if err := db.Create(&comp).Error; err != nil {
		if isUniqueViolation(err) {
			return Completion{}, ErrAlreadyCompleted
		}
		return Completion{}, err
	}
	return comp, nil
}

// IsCompleted reports whether the user has completed the content.
func IsCompleted(db *gorm.DB, userID, contentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&Completion{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

// CompletedSet returns the set of content ids the user has completed.
func CompletedSet(db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var rows []Completion
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		set[row.ContentID] = struct{}{}
	}
	return set, nil
}

// CompletedUserSet returns the set of user ids that completed the content.
func CompletedUserSet(db *gorm.DB, contentID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var rows []Completion
	if err := db.Where("content_id = ?", contentID).Find(&rows).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		set[row.UserID] = struct{}{}
	}
	return set, nil
}

// CountForUser returns how many contents the user has completed.
func CountForUser(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&Completion{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
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
