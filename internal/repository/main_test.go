package repository

import (
	"os"
	"testing"
	"time"

	"newshub/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.News{},
		&models.Interaction{},
		&models.Comment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedNews(t *testing.T, db *gorm.DB, title string, status models.NewsStatus, mutate ...func(*models.News)) *models.News {
	t.Helper()
	now := time.Now()
	news := &models.News{
		Slug:        "slug-" + title,
		Title:       title,
		Summary:     "summary of " + title,
		Content:     "content of " + title,
		Category:    models.CategoryTechnology,
		Author:      "reporter",
		Status:      status,
		PublishedAt: &now,
	}
	for _, fn := range mutate {
		fn(news)
	}
	require.NoError(t, db.Create(news).Error)
	return news
}
