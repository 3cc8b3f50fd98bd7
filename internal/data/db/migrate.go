package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

// AutoMigrateAll creates the shared-store tables.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.CurriculumCacheEntry{},
		&types.GeneratedAssetEntry{},
		&types.Feedback{},
	)
}

// AutoMigrateLocal creates the local mirror table. Feedback lands here when no shared
// database is configured.
func AutoMigrateLocal(db *gorm.DB) error {
	return db.AutoMigrate(&types.LocalCacheEntry{}, &types.Feedback{})
}
