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

type CurriculumCacheRepo interface {
	GetBySlug(dbc dbctx.Context, slug string) (*types.CurriculumCacheEntry, error)
	Upsert(dbc dbctx.Context, row *types.CurriculumCacheEntry) error
	List(dbc dbctx.Context) ([]*types.CurriculumCacheEntry, error)
}

type curriculumCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumCacheRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumCacheRepo {
	return &curriculumCacheRepo{
		db:  db,
		log: baseLog.With("repo", "CurriculumCacheRepo"),
	}
}

func (r *curriculumCacheRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.CurriculumCacheEntry, error) {
	transaction := dbc.DB(r.db)
	if slug == "" {
		return nil, nil
	}
	var row types.CurriculumCacheEntry
	err := transaction.
		Where("language_slug = ?", slug).
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

// Upsert inserts or replaces the entry for row.LanguageSlug.
func (r *curriculumCacheRepo) Upsert(dbc dbctx.Context, row *types.CurriculumCacheEntry) error {
	transaction := dbc.DB(r.db)
	if row == nil || row.LanguageSlug == "" {
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
			Columns: []clause.Column{{Name: "language_slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"config_hash",
				"curriculum",
				"model_version",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *curriculumCacheRepo) List(dbc dbctx.Context) ([]*types.CurriculumCacheEntry, error) {
	transaction := dbc.DB(r.db)
	var out []*types.CurriculumCacheEntry
	if err := transaction.
		Select("id", "language_slug", "config_hash", "model_version", "created_at", "updated_at").
		Order("language_slug ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
