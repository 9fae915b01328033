package category

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a fixed subject area contents are filed under.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}

// TableName overrides the default table name.
func (Category) TableName() string { return "categories" }

// DefaultNames is the reference list seeded at first startup.
var DefaultNames = []string{
	"Programming",
	"Design",
	"Business",
	"Science",
	"Mathematics",
	"Language",
	"Music",
	"Health",
}

// List returns all categories ordered by name.
func List(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Get retrieves a category by id.
func Get(db *gorm.DB, id uuid.UUID) (Category, error) {
	var cat Category
	if err := db.First(&cat, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return cat, ErrCategoryNotFound
		}
		return cat, err
	}
	return cat, nil
}

// Seed inserts the default categories, skipping names already present.
func Seed(db *gorm.DB) error {
	for _, name := range DefaultNames {
		var count int64
		if err := db.Model(&Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
