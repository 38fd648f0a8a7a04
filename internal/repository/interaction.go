package repository

import (
	"context"

	"newshub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository defines the interface for user interaction data operations
type InteractionRepository interface {
	InsertIfAbsent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error)
	DeleteIfPresent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error)
	Record(ctx context.Context, userID, newsID uint, t models.InteractionType) error
	Exists(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error)
	ActiveTypes(ctx context.Context, userID, newsID uint) (map[string]bool, error)
	CountForNews(ctx context.Context, newsID uint, t models.InteractionType) (int64, error)
	ListNewsIDs(ctx context.Context, userID uint, t models.InteractionType, limit, offset int) ([]uint, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// InsertIfAbsent atomically creates the interaction row unless it already
// exists. The rows-affected count decides which branch of a toggle ran, so
// two concurrent requests can never both observe an insert.
func (r *interactionRepository) InsertIfAbsent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "news_id"}, {Name: "type"}},
			DoNothing: true,
		}).
		Create(&models.Interaction{UserID: userID, NewsID: newsID, Type: t})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteIfPresent removes the interaction row and reports whether one was
// actually deleted.
func (r *interactionRepository) DeleteIfPresent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND news_id = ? AND type = ?", userID, newsID, t).
		Delete(&models.Interaction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Record stores the interaction, keeping the first-seen row when it already
// exists.
func (r *interactionRepository) Record(ctx context.Context, userID, newsID uint, t models.InteractionType) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "news_id"}, {Name: "type"}},
			DoNothing: true,
		}).
		Create(&models.Interaction{UserID: userID, NewsID: newsID, Type: t}).Error
}

func (r *interactionRepository) Exists(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND news_id = ? AND type = ?", userID, newsID, t).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActiveTypes returns a sparse map of the interaction types the user holds
// against the article. Absent types are simply missing from the map.
func (r *interactionRepository) ActiveTypes(ctx context.Context, userID, newsID uint) (map[string]bool, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		Pluck("type", &types).Error
	if err != nil {
		return nil, err
	}

	active := make(map[string]bool, len(types))
	for _, t := range types {
		active[t] = true
	}
	return active, nil
}

func (r *interactionRepository) CountForNews(ctx context.Context, newsID uint, t models.InteractionType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("news_id = ? AND type = ?", newsID, t).
		Count(&count).Error
	return count, err
}

// ListNewsIDs returns the article IDs the user holds the interaction
// against, most recent first.
func (r *interactionRepository) ListNewsIDs(ctx context.Context, userID uint, t models.InteractionType, limit, offset int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND type = ?", userID, t).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("news_id", &ids).Error
	return ids, err
}
