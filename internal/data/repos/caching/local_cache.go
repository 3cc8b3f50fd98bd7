package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// LocalCacheRepo is the on-disk curriculum mirror. It satisfies store.Local.
type LocalCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocalCacheRepo(db *gorm.DB, baseLog *logger.Logger) *LocalCacheRepo {
	return &LocalCacheRepo{db: db, log: baseLog.With("repo", "LocalCacheRepo")}
}

func (r *LocalCacheRepo) Get(ctx context.Context, key string) (*types.Curriculum, bool, error) {
	var row types.LocalCacheEntry
	err := r.db.WithContext(ctx).Where("cache_key = ?", key).Limit(1).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cur types.Curriculum
	if err := json.Unmarshal(row.Curriculum, &cur); err != nil {
		r.log.Warn("Dropping unreadable local cache entry", "key", key, "error", err)
		return nil, false, nil
	}
	return &cur, true, nil
}

func (r *LocalCacheRepo) Put(ctx context.Context, key string, cur *types.Curriculum) error {
	if cur == nil {
		return nil
	}
	raw, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("encode curriculum %s: %w", key, err)
	}
	row := &types.LocalCacheEntry{CacheKey: key, Curriculum: raw, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"curriculum", "updated_at"}),
		}).
		Create(row).Error
}
