package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/category"
	"github.com/eduflow/eduflow-server/internal/features/profile"
	"github.com/eduflow/eduflow-server/internal/youtube"
	"github.com/eduflow/eduflow-server/pkg/pagination"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Content is a published or in-progress learning material.
type Content struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string              `gorm:"type:varchar(255);not null" json:"title"`
	Description  string              `gorm:"type:text;not null" json:"description"`
	ContentType  types.ContentType   `gorm:"type:varchar(20);not null;column:content_type" json:"contentType"`
	ContentURL   string              `gorm:"type:text;column:content_url" json:"contentUrl"`
	PreviewURL   string              `gorm:"type:text;column:preview_url" json:"previewUrl"`
	ThumbnailURL string              `gorm:"type:text;column:thumbnail_url" json:"thumbnailUrl"`
	Tags         pq.StringArray      `gorm:"type:text[]" json:"tags"`
	Status       types.ContentStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	AuthorID     uuid.UUID           `gorm:"type:uuid;not null;column:author_id;index" json:"authorId"`
	Author       *profile.Profile    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID   *uuid.UUID          `gorm:"type:uuid;column:category_id;index" json:"categoryId"`
	Category     *category.Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Views        int64               `gorm:"not null;default:0" json:"views"`
	CreatedAt    time.Time           `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time           `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the default table name.
func (Content) TableName() string { return "contents" }

// StatusBadge is the derived label creator listings show for a row.
func (c Content) StatusBadge() string {
	return c.Status.Badge()
}

// SplitTags turns a comma-separated string into the stored tag list.
// Pieces are trimmed; whitespace-only input yields an empty list.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	pieces := strings.Split(raw, ",")
	tags := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		tags = append(tags, strings.TrimSpace(piece))
	}
	return tags
}

// SaveInput carries the authoring fields shared by create and update.
type SaveInput struct {
	Title        string
	Description  string
	ContentType  types.ContentType
	ContentURL   string
	PreviewURL   string
	ThumbnailURL string
	Tags         string
	Status       types.ContentStatus
	CategoryID   uuid.UUID
}

func (in SaveInput) validate() error {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		in.CategoryID == uuid.Nil {
		return ErrFieldsRequired
	}
	if !in.ContentType.Valid() {
		return ErrInvalidContentType
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// thumbnail derives the stored thumbnail: an explicit URL wins, then
// video rows pointing at YouTube get the maxresdefault image.
func (in SaveInput) thumbnail() string {
	if in.ThumbnailURL != "" {
		return in.ThumbnailURL
	}
	if in.ContentType == types.ContentTypeVideo {
		if url, ok := youtube.ThumbnailURL(in.ContentURL); ok {
			return url
		}
	}
	return ""
}

// Create inserts a new content row for the author.
func Create(db *gorm.DB, authorID uuid.UUID, input SaveInput) (Content, error) {
	if err := input.validate(); err != nil {
		return Content{}, err
	}

	if _, err := category.Get(db, input.CategoryID); err != nil {
		return Content{}, err
	}

	categoryID := input.CategoryID
	row := Content{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		ContentType:  input.ContentType,
		ContentURL:   input.ContentURL,
		PreviewURL:   input.PreviewURL,
		ThumbnailURL: input.thumbnail(),
		Tags:         pq.StringArray(SplitTags(input.Tags)),
		Status:       input.Status,
		AuthorID:     authorID,
		CategoryID:   &categoryID,
	}

	if err := db.Create(&row).Error; err != nil {
		return Content{}, err
	}
	return row, nil
}

// Update rewrites the authoring fields of an owned row.
func Update(db *gorm.DB, id, authorID uuid.UUID, input SaveInput) (Content, error) {
	if err := input.validate(); err != nil {
		return Content{}, err
	}

	row, err := getOwned(db, id, authorID)
	if err != nil {
		return Content{}, err
	}

	if _, err := category.Get(db, input.CategoryID); err != nil {
		return Content{}, err
	}

	categoryID := input.CategoryID
	row.Title = strings.TrimSpace(input.Title)
	row.Description = input.Description
	row.ContentType = input.ContentType
	row.ContentURL = input.ContentURL
	row.PreviewURL = input.PreviewURL
	row.ThumbnailURL = input.thumbnail()
	row.Tags = pq.StringArray(SplitTags(input.Tags))
	row.Status = input.Status
	row.CategoryID = &categoryID

	if err := db.Save(&row).Error; err != nil {
		return Content{}, err
	}
	return row, nil
}

// publishTransition reports the status a publish request lands on and
// whether the row actually changes. Publishing a published row is a
// no-op.
func publishTransition(current types.ContentStatus) (types.ContentStatus, bool) {
	if current == types.StatusPublished {
		return current, false
	}
	return types.StatusPublished, true
}

// Publish flips a row to published. Publishing an already-published
// row is a no-op and leaves views untouched.
func Publish(db *gorm.DB, id, authorID uuid.UUID) (Content, error) {
	row, err := getOwned(db, id, authorID)
	if err != nil {
		return Content{}, err
	}

	next, changed := publishTransition(row.Status)
	if !changed {
		return row, nil
	}

	row.Status = next
	if err := db.Save(&row).Error; err != nil {
		return Content{}, err
	}
	return row, nil
}

// Delete removes an owned row permanently.
func Delete(db *gorm.DB, id, authorID uuid.UUID) error {
	result := db.Where("id = ? AND author_id = ?", id, authorID).Delete(&Content{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from someone else's row.
		var count int64
		if err := db.Model(&Content{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNotOwner
		}
		return ErrContentNotFound
	}
	return nil
}

// Get retrieves a row with author and category joined.
func Get(db *gorm.DB, id uuid.UUID) (Content, error) {
	var row Content
	err := db.Preload("Author").Preload("Category").First(&row, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return row, ErrContentNotFound
		}
		return row, err
	}
	return row, nil
}

func getOwned(db *gorm.DB, id, authorID uuid.UUID) (Content, error) {
	row, err := Get(db, id)
	if err != nil {
		return Content{}, err
	}
	if row.AuthorID != authorID {
		return Content{}, ErrNotOwner
	}
	return row, nil
}

// ListMine returns the author's rows newest first.
func ListMine(db *gorm.DB, authorID uuid.UUID, params pagination.Params) ([]Content, int64, error) {
	query := db.Model(&Content{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Content
	err := query.Preload("Category").
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).Error
	return rows, total, err
}

// BrowseFilter narrows the public catalog listing.
type BrowseFilter struct {
	Query      string
	CategoryID uuid.UUID
	Sort       string // latest | views
}

// Browse lists published rows matching the filter. The free-text query
// matches title substrings case-insensitively or exact tag membership.
func Browse(db *gorm.DB, filter BrowseFilter, params pagination.Params) ([]Content, int64, error) {
	query := db.Model(&Content{}).Where("status = ?", types.StatusPublished)

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("title ILIKE ? OR ? = ANY(tags)", "%"+q+"%", q)
	}
	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Sort == "views" {
		order = "views DESC"
	}

	var rows []Content
	err := query.Preload("Author").Preload("Category").
		Order(order).
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).Error
	return rows, total, err
}

// Recommendations returns up to limit published rows sharing the
// category, excluding the row itself.
func Recommendations(db *gorm.DB, row Content, limit int) ([]Content, error) {
	query := db.Model(&Content{}).
		Where("status = ? AND id <> ?", types.StatusPublished, row.ID)
	if row.CategoryID != nil {
		query = query.Where("category_id = ?", *row.CategoryID)
	}

	var rows []Content
	err := query.Preload("Author").Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// LatestPublished returns up to limit most recent published rows, used
// for dashboard recommendations.
func LatestPublished(db *gorm.DB, limit int) ([]Content, error) {
	var rows []Content
	err := db.Model(&Content{}).
		Where("status = ?", types.StatusPublished).
		Preload("Author").Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// IncrementViews bumps the view counter in a single UPDATE so
// concurrent detail fetches never lose counts.
func IncrementViews(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&Content{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ByIDs loads rows preserving the order of ids.
func ByIDs(db *gorm.DB, ids []uuid.UUID) ([]Content, error) {
	if len(ids) == 0 {
		return []Content{}, nil
	}

	var rows []Content
	if err := db.Preload("Author").Preload("Category").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]Content, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]Content, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// CreatorSummary aggregates an author's catalog for the dashboard.
type CreatorSummary struct {
	PublishedCount int64 `json:"publishedCount"`
	DraftCount     int64 `json:"draftCount"`
	TotalViews     int64 `json:"totalViews"`
}

// SummarizeCreator computes the creator dashboard counters.
func SummarizeCreator(db *gorm.DB, authorID uuid.UUID) (CreatorSummary, error) {
	var summary CreatorSummary

	if err := db.Model(&Content{}).
		Where("author_id = ? AND status = ?", authorID, types.StatusPublished).
		Count(&summary.PublishedCount).Error; err != nil {
		return summary, err
	}

	if err := db.Model(&Content{}).
		Where("author_id = ? AND status = ?", authorID, types.StatusDraft).
		Count(&summary.DraftCount).Error; err != nil {
		return summary, err
	}

	err := db.Model(&Content{}).
		Where("author_id = ?", authorID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&summary.TotalViews).Error
	return summary, err
}
