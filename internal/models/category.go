package models

// Category is a reader-facing news section. The set is seeded at setup
// time and ordered by SortOrder in client navigation.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:100" json:"icon"`
	Color       string `gorm:"size:7" json:"color"`
	SortOrder   int    `gorm:"default:0;index" json:"sort_order"`
	// No column default on purpose: with one, GORM drops a false value
	// from the INSERT and the row comes back active.
	IsActive bool `gorm:"index" json:"is_active"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}
