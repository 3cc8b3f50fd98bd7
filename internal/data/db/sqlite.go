package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// OpenSQLite opens (creating if needed) the local curriculum mirror at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(logg *logger.Logger, path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection also keeps ":memory:" on a single database.
	sqlDB.SetMaxOpenConns(1)
	if logg != nil {
		logg.Info("Opened local curriculum store", "path", path)
	}
	return db, nil
}
