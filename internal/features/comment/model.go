package comment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/profile"
)

// Comment is a flat remark on a content's detail page.
type Comment struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContentID uuid.UUID        `gorm:"type:uuid;not null;column:content_id;index:idx_content_created,priority:1" json:"contentId"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;column:user_id" json:"userId"`
	User      *profile.Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time        `gorm:"column:created_at;index:idx_content_created,priority:2" json:"createdAt"`
}

// TableName overrides the default table name.
func (Comment) TableName() string { return "comments" }

// ListForContent retrieves all comments on a content, newest first,
// with the commenter profile joined.
func ListForContent(db *gorm.DB, contentID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := db.Preload("User").
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Get retrieves a comment by id.
func Get(db *gorm.DB, id uuid.UUID) (Comment, error) {
	var comment Comment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return comment, ErrCommentNotFound
		}
		return comment, err
	}
	return comment, nil
}

// Create inserts a comment and returns it with the commenter joined so
// clients can prepend it directly.
func Create(db *gorm.DB, contentID, userID uuid.UUID, message string) (Comment, error) {
	if message == "" {
		return Comment{}, ErrMessageRequired
	}

	comment := Comment{
		ContentID: contentID,
		UserID:    userID,
		Message:   message,
	}

	if err := db.Create(&comment).Error; err != nil {
		return Comment{}, err
	}

	if err := db.Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// Delete removes a comment scoped to its content.
func Delete(db *gorm.DB, id, contentID uuid.UUID) error {
	result := db.Where("id = ? AND content_id = ?", id, contentID).Delete(&Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// CountForUser returns how many comments the user has authored.
func CountForUser(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
