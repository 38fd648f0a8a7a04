package models

import "time"

// InteractionType distinguishes the kinds of user engagement tracked
// against an article.
type InteractionType string

const (
	InteractionLike     InteractionType = "like"
	InteractionFavorite InteractionType = "favorite"
	InteractionShare    InteractionType = "share"
	InteractionView     InteractionType = "view"
)

// IsValid reports whether t is a recognized interaction type.
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionLike, InteractionFavorite, InteractionShare, InteractionView:
		return true
	}
	return false
}

// Interaction records one user's engagement with one article. At most one
// row exists per (user, news, type); toggles insert and delete rows rather
// than flipping a flag.
type Interaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_user_news_type" json:"user_id"`
	NewsID    uint            `gorm:"not null;uniqueIndex:idx_user_news_type;index" json:"news_id"`
	Type      InteractionType `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_news_type" json:"interaction_type"`
	CreatedAt time.Time       `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	News News `gorm:"foreignKey:NewsID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Interaction) TableName() string {
	return "user_interactions"
}

// ToggleResult reports the outcome of a like or favorite toggle.
type ToggleResult struct {
	Action      string `json:"action"`
	LikeCount   *int   `json:"like_count,omitempty"`
	IsLiked     *bool  `json:"is_liked,omitempty"`
	IsFavorited *bool  `json:"is_favorited,omitempty"`
}

// ShareResult reports the outcome of recording a share. Title rides along
// so clients can fill the native share sheet without a second request.
type ShareResult struct {
	ShareCount int    `json:"share_count"`
	ShareURL   string `json:"share_url"`
	Title      string `json:"title"`
}

// Toggle action values.
const (
	ToggleActionAdded   = "added"
	ToggleActionRemoved = "removed"
)
