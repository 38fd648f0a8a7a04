package models

import "time"

// UserPreferences holds per-user reading preferences delivered with the
// profile payload.
type UserPreferences struct {
	Categories        []string `json:"categories,omitempty"`
	PushNotifications bool     `json:"push_notifications"`
	DarkMode          bool     `json:"dark_mode"`
	Language          string   `json:"language,omitempty"`
}

// User represents a user account.
type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	DisplayName  string          `gorm:"size:100" json:"display_name"`
	AvatarURL    string          `json:"avatar_url"`
	Preferences  UserPreferences `gorm:"serializer:json" json:"preferences"`
	// DeviceID and PushToken identify the reader's current mobile device
	// for push delivery. Cleared on logout.
	DeviceID  string `gorm:"size:100" json:"-"`
	PushToken string `gorm:"size:255" json:"-"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time      `json:"last_login_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// PublicUser is the user shape safe to embed in responses.
type PublicUser struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	AvatarURL   string          `json:"avatar_url"`
	Preferences UserPreferences `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Public strips credential fields for response payloads.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
}

// TokenPair is the credential payload returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
