package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a reader comment on a news article. Replies reference
// their parent through ParentID; top-level comments leave it nil.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	NewsID    uint           `gorm:"not null;index" json:"news_id"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	News      News           `gorm:"foreignKey:NewsID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Replies is populated only when a thread is assembled; it is not a
	// GORM association.
	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
