package database

import "newshub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.News{},
		&models.Interaction{},
		&models.Comment{},
	}
}
