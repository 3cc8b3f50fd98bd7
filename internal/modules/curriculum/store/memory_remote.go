package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

type assetKey struct {
	slug, topicID string
	assetType     types.AssetType
}

type memoryRemote struct {
	mu        sync.RWMutex
	curricula map[string]CachedCurriculum
	assets    map[assetKey]types.GeneratedAsset
}

// NewMemoryRemote is a process-local Remote, used for REMOTE_STORE=memory and in tests.
func NewMemoryRemote() Remote {
	return &memoryRemote{
		curricula: map[string]CachedCurriculum{},
		assets:    map[assetKey]types.GeneratedAsset{},
	}
}

func (m *memoryRemote) GetCurriculum(_ context.Context, slug string) (*CachedCurriculum, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.curricula[slug]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *memoryRemote) UpsertCurriculum(_ context.Context, entry CachedCurriculum) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	m.curricula[entry.LanguageSlug] = entry
	m.mu.Unlock()
	return nil
}

func (m *memoryRemote) ListCurricula(_ context.Context) ([]types.CacheMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.CacheMetadata, 0, len(m.curricula))
	for _, e := range m.curricula {
		out = append(out, types.CacheMetadata{
			LanguageSlug: e.LanguageSlug,
			UpdatedAt:    e.UpdatedAt.UTC().Format(time.RFC3339),
			ConfigHash:   e.ConfigHash,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LanguageSlug < out[j].LanguageSlug })
	return out, nil
}

func (m *memoryRemote) GetAsset(_ context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[assetKey{slug, topicID, assetType}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memoryRemote) UpsertAsset(_ context.Context, asset *types.GeneratedAsset) error {
	if asset == nil {
		return nil
	}
	now := time.Now().UTC()
	k := assetKey{asset.LanguageSlug, asset.TopicID, asset.AssetType}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.assets[k]; ok {
		asset.ID = prev.ID
		asset.CreatedAt = prev.CreatedAt
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = now
	}
	asset.UpdatedAt = now
	m.assets[k] = *asset
	return nil
}
