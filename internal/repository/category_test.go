package repository

import (
	"context"
	"testing"

	"newshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListActive_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Category{Name: "sports", DisplayName: "Sports", SortOrder: 3, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "technology", DisplayName: "Technology", SortOrder: 1, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "retired", DisplayName: "Retired", SortOrder: 0, IsActive: false}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "business", DisplayName: "Business", SortOrder: 2, IsActive: true}).Error)

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "technology", categories[0].Name)
	assert.Equal(t, "business", categories[1].Name)
	assert.Equal(t, "sports", categories[2].Name)
}

func TestCategoryRepository_InactiveFlagPersists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Category{Name: "retired", DisplayName: "Retired", IsActive: false}).Error)

	var got models.Category
	require.NoError(t, db.Where("name = ?", "retired").First(&got).Error)
	assert.False(t, got.IsActive, "false must survive the insert, not be masked by a column default")

	categories, err := NewCategoryRepository(db).ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Category{Name: "science", DisplayName: "Science", SortOrder: 1, IsActive: true}))
	require.NoError(t, repo.Upsert(ctx, &models.Category{Name: "science", DisplayName: "Science & Space", SortOrder: 5, IsActive: true}))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByName(ctx, "science")
	require.NoError(t, err)
	assert.Equal(t, "Science & Space", got.DisplayName)
	assert.Equal(t, 5, got.SortOrder)
}
