// Package store defines the persistence seams used by the curriculum pipeline.
package store

import (
	"context"
	"sync"
	"time"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

// Local is the same-process persistent mirror keyed by the full slug:hash:variant key.
type Local interface {
	Get(ctx context.Context, key string) (*types.Curriculum, bool, error)
	Put(ctx context.Context, key string, cur *types.Curriculum) error
}

// CachedCurriculum is a shared-store entry for one subject.
type CachedCurriculum struct {
	LanguageSlug string
	ConfigHash   string
	Curriculum   *types.Curriculum
	UpdatedAt    time.Time
}

// Remote is the shared store: one curriculum per slug and one asset per (slug, topic, type).
// Missing entries are reported as (nil, nil).
type Remote interface {
	GetCurriculum(ctx context.Context, slug string) (*CachedCurriculum, error)
	UpsertCurriculum(ctx context.Context, entry CachedCurriculum) error
	ListCurricula(ctx context.Context) ([]types.CacheMetadata, error)

	GetAsset(ctx context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error)
	UpsertAsset(ctx context.Context, asset *types.GeneratedAsset) error
}

type memoryLocal struct {
	mu      sync.RWMutex
	entries map[string]*types.Curriculum
}

func NewMemoryLocal() Local {
	return &memoryLocal{entries: map[string]*types.Curriculum{}}
}

func (m *memoryLocal) Get(_ context.Context, key string) (*types.Curriculum, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur, ok := m.entries[key]
	return cur, ok, nil
}

func (m *memoryLocal) Put(_ context.Context, key string, cur *types.Curriculum) error {
	if cur == nil {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = cur
	m.mu.Unlock()
	return nil
}

type tieredLocal struct {
	memory Local
	disk   Local
}

// NewTieredLocal reads memory first and falls back to disk, promoting disk hits.
// Writes go to both tiers.
func NewTieredLocal(disk Local) Local {
	if disk == nil {
		return NewMemoryLocal()
	}
	return &tieredLocal{memory: NewMemoryLocal(), disk: disk}
}

func (t *tieredLocal) Get(ctx context.Context, key string) (*types.Curriculum, bool, error) {
	if cur, ok, _ := t.memory.Get(ctx, key); ok {
		return cur, true, nil
	}
	cur, ok, err := t.disk.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.memory.Put(ctx, key, cur)
	return cur, true, nil
}

func (t *tieredLocal) Put(ctx context.Context, key string, cur *types.Curriculum) error {
	_ = t.memory.Put(ctx, key, cur)
	return t.disk.Put(ctx, key, cur)
}

// NopRemote is used when no shared store is configured.
type NopRemote struct{}

func (NopRemote) GetCurriculum(context.Context, string) (*CachedCurriculum, error) { return nil, nil }
func (NopRemote) UpsertCurriculum(context.Context, CachedCurriculum) error          { return nil }
func (NopRemote) ListCurricula(context.Context) ([]types.CacheMetadata, error) {
	return []types.CacheMetadata{}, nil
}
func (NopRemote) GetAsset(context.Context, string, string, types.AssetType) (*types.GeneratedAsset, error) {
	return nil, nil
}
func (NopRemote) UpsertAsset(context.Context, *types.GeneratedAsset) error { return nil }
