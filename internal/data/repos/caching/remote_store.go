package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/pkg/dbctx"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// RemoteStore adapts the cache repos to store.Remote.
type RemoteStore struct {
	log       *logger.Logger
	curricula CurriculumCacheRepo
	assets    GeneratedAssetRepo
}

func NewRemoteStore(db *gorm.DB, baseLog *logger.Logger) *RemoteStore {
	return &RemoteStore{
		log:       baseLog.With("service", "PostgresRemoteStore"),
		curricula: NewCurriculumCacheRepo(db, baseLog),
		assets:    NewGeneratedAssetRepo(db, baseLog),
	}
}

var _ store.Remote = (*RemoteStore)(nil)

func (s *RemoteStore) GetCurriculum(ctx context.Context, slug string) (*store.CachedCurriculum, error) {
	row, err := s.curricula.GetBySlug(dbctx.Context{Ctx: ctx}, slug)
	if err != nil || row == nil {
		return nil, err
	}
	var cur types.Curriculum
	if err := json.Unmarshal(row.Curriculum, &cur); err != nil {
		s.log.Warn("Shared curriculum entry did not decode; treating as miss", "slug", slug, "error", err)
		return nil, nil
	}
	return &store.CachedCurriculum{
		LanguageSlug: row.LanguageSlug,
		ConfigHash:   row.ConfigHash,
		Curriculum:   &cur,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (s *RemoteStore) UpsertCurriculum(ctx context.Context, entry store.CachedCurriculum) error {
	if entry.Curriculum == nil {
		return nil
	}
	raw, err := json.Marshal(entry.Curriculum)
	if err != nil {
		return fmt.Errorf("encode curriculum %s: %w", entry.LanguageSlug, err)
	}
	return s.curricula.Upsert(dbctx.Context{Ctx: ctx}, &types.CurriculumCacheEntry{
		LanguageSlug: entry.LanguageSlug,
		ConfigHash:   entry.ConfigHash,
		Curriculum:   raw,
		ModelVersion: entry.Curriculum.ModelVersion,
	})
}

func (s *RemoteStore) ListCurricula(ctx context.Context) ([]types.CacheMetadata, error) {
	rows, err := s.curricula.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	out := make([]types.CacheMetadata, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.CacheMetadata{
			LanguageSlug: row.LanguageSlug,
			UpdatedAt:    row.UpdatedAt.UTC().Format(time.RFC3339),
			ConfigHash:   row.ConfigHash,
		})
	}
	return out, nil
}

func (s *RemoteStore) GetAsset(ctx context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error) {
	row, err := s.assets.GetByKey(dbctx.Context{Ctx: ctx}, slug, topicID, string(assetType))
	if err != nil || row == nil {
		return nil, err
	}
	return assetFromRow(row), nil
}

// UpsertAsset writes the asset and refreshes its id and timestamps from the stored row.
func (s *RemoteStore) UpsertAsset(ctx context.Context, asset *types.GeneratedAsset) error {
	if asset == nil {
		return nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	row := &types.GeneratedAssetEntry{
		LanguageSlug: asset.LanguageSlug,
		TopicID:      asset.TopicID,
		AssetType:    string(asset.AssetType),
		ConfigHash:   asset.ConfigHash,
		Content:      []byte(asset.Content),
		AudioURL:     asset.AudioURL,
	}
	if id, err := uuid.Parse(asset.ID); err == nil {
		row.ID = id
	}
	if err := s.assets.Upsert(dbc, row); err != nil {
		return err
	}
	stored, err := s.assets.GetByKey(dbc, row.LanguageSlug, row.TopicID, row.AssetType)
	if err != nil {
		return err
	}
	if stored != nil {
		*asset = *assetFromRow(stored)
	}
	return nil
}

func assetFromRow(row *types.GeneratedAssetEntry) *types.GeneratedAsset {
	return &types.GeneratedAsset{
		ID:           row.ID.String(),
		LanguageSlug: row.LanguageSlug,
		TopicID:      row.TopicID,
		AssetType:    types.AssetType(row.AssetType),
		ConfigHash:   row.ConfigHash,
		Content:      json.RawMessage(row.Content),
		AudioURL:     row.AudioURL,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
