package caching

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/pkg/dbctx"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type GeneratedAssetRepo interface {
	GetByKey(dbc dbctx.Context, slug, topicID, assetType string) (*types.GeneratedAssetEntry, error)
	ListBySlug(dbc dbctx.Context, slug string) ([]*types.GeneratedAssetEntry, error)
	Upsert(dbc dbctx.Context, row *types.GeneratedAssetEntry) error
}

type generatedAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedAssetRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedAssetRepo {
	return &generatedAssetRepo{
		db:  db,
		log: baseLog.With("repo", "GeneratedAssetRepo"),
	}
}

func (r *generatedAssetRepo) GetByKey(dbc dbctx.Context, slug, topicID, assetType string) (*types.GeneratedAssetEntry, error) {
	transaction := dbc.DB(r.db)
	if slug == "" || topicID == "" || assetType == "" {
		return nil, nil
	}
	var row types.GeneratedAssetEntry
	err := transaction.
		Where("language_slug = ? AND topic_id = ? AND asset_type = ?", slug, topicID, assetType).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *generatedAssetRepo) ListBySlug(dbc dbctx.Context, slug string) ([]*types.GeneratedAssetEntry, error) {
	transaction := dbc.DB(r.db)
	var out []*types.GeneratedAssetEntry
	if slug == "" {
		return out, nil
	}
	if err := transaction.
		Where("language_slug = ?", slug).
		Order("topic_id ASC, asset_type ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts or replaces the asset for (slug, topic, type). The stored id and
// created_at survive a replace.
func (r *generatedAssetRepo) Upsert(dbc dbctx.Context, row *types.GeneratedAssetEntry) error {
	transaction := dbc.DB(r.db)
	if row == nil || row.LanguageSlug == "" || row.TopicID == "" || row.AssetType == "" {
		return nil
	}
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	return transaction.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "language_slug"}, {Name: "topic_id"}, {Name: "asset_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"config_hash",
				"content",
				"audio_url",
				"updated_at",
			}),
		}).
		Create(row).Error
}
