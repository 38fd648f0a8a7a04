package repository

import (
	"context"

	"newshub/internal/cache"
	"newshub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Upsert(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// ListActive returns active categories in navigation order.
func (r *categoryRepository) ListActive(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, "categories", cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("sort_order ASC").
			Find(&categories).Error
	})
	return categories, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Upsert creates the category or updates its display fields when a row with
// the same name exists. Seeding uses it to stay idempotent.
func (r *categoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	var existing models.Category
	err := r.db.WithContext(ctx).Where("name = ?", category.Name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
			return err
		}
		cache.InvalidateCategories(ctx)
		return nil
	}
	if err != nil {
		return err
	}

	category.ID = existing.ID
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return err
	}
	cache.InvalidateCategories(ctx)
	return nil
}
