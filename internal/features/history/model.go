// Package history records every detail-page visit as an append-only
// event. Deduplication happens at read time, never at write time.
package history

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one view event.
type Entry struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;column:user_id;index:idx_history_user_accessed,priority:1" json:"userId"`
	ContentID  uuid.UUID `gorm:"type:uuid;not null;column:content_id;index" json:"contentId"`
	AccessedAt time.Time `gorm:"column:accessed_at;index:idx_history_user_accessed,priority:2" json:"accessedAt"`
}

// TableName overrides the default table name.
func (Entry) TableName() string { return "history" }

// Record appends a view event.
func Record(db *gorm.DB, userID, contentID uuid.UUID) error {
	return db.Create(&Entry{
		UserID:     userID,
		ContentID:  contentID,
		AccessedAt: time.Now(),
	}).Error
}

// Viewer is one deduplicated entry in a content's viewer list: the
// user together with their most recent visit.
type Viewer struct {
	UserID     uuid.UUID `json:"userId"`
	AccessedAt time.Time `json:"accessedAt"`
}

// ViewersForContent returns the deduplicated viewer list for a content.
// Entries are walked newest first and the first row per user wins, so
// each viewer carries their latest access time. Order follows recency
// of that latest access.
func ViewersForContent(db *gorm.DB, contentID uuid.UUID) ([]Viewer, error) {
	var entries []Entry
	if err := db.Where("content_id = ?", contentID).
		Order("accessed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return Dedup(entries), nil
}

// Dedup collapses entries (assumed ordered newest first) to one Viewer
// per user.
func Dedup(entries []Entry) []Viewer {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	viewers := make([]Viewer, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.UserID]; ok {
			continue
		}
		seen[e.UserID] = struct{}{}
		viewers = append(viewers, Viewer{UserID: e.UserID, AccessedAt: e.AccessedAt})
	}
	return viewers
}

// RecentContentIDs returns the user's most recently accessed distinct
// content ids, newest first, capped at limit.
func RecentContentIDs(db *gorm.DB, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var entries []Entry
	if err := db.Where("user_id = ?", userID).
		Order("accessed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, limit)
	for _, e := range entries {
		if _, ok := seen[e.ContentID]; ok {
			continue
		}
		seen[e.ContentID] = struct{}{}
		ids = append(ids, e.ContentID)
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

// DistinctContentCount returns how many distinct contents the user has
// visited.
func DistinctContentCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&Entry{}).
		Where("user_id = ?", userID).
		Distinct("content_id").
		Count(&count).Error
	return count, err
}
