package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/generator"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// Pipeline is the generation side the Manager wraps.
type Pipeline interface {
	Generate(ctx context.Context, slug string) (*generator.Result, error)
	Regenerate(ctx context.Context, slug string) (*generator.Result, error)
	Enrich(ctx context.Context, slug string, cur *types.Curriculum, opts generator.EnrichOptions) (*types.Curriculum, error)
}

// HashResolver reports the current config hash for a slug.
type HashResolver interface {
	ResolveHash(ctx context.Context, slug string) (string, bool, error)
}

type Options struct {
	// StrictInvalidation regenerates when the shared entry's config hash is stale
	// instead of serving it.
	StrictInvalidation bool
	Metrics            *observability.Metrics
}

// Manager serves curricula through an in-flight call map, the shared store and the
// generator, in that order. One Manager is built per process.
type Manager struct {
	log      *logger.Logger
	pipeline Pipeline
	hashes   HashResolver
	remote   store.Remote
	strict   bool
	metrics  *observability.Metrics

	group singleflight.Group

	// mu guards epochs and orders group calls so a Refresh's Forget and DoChan are not
	// split by a Get.
	mu     sync.Mutex
	epochs map[string]uint64
}

func NewManager(log *logger.Logger, pipeline Pipeline, hashes HashResolver, remote store.Remote, opts Options) *Manager {
	if remote == nil {
		remote = store.NopRemote{}
	}
	return &Manager{
		log:      log.With("service", "CurriculumCache"),
		pipeline: pipeline,
		hashes:   hashes,
		remote:   remote,
		strict:   opts.StrictInvalidation,
		metrics:  opts.Metrics,
		epochs:   map[string]uint64{},
	}
}

// Get returns the curriculum for slug. Concurrent callers for the same slug share one
// load; a caller whose ctx ends stops waiting but the load runs to completion.
func (m *Manager) Get(ctx context.Context, slug string) (*types.Curriculum, error) {
	slug = configsrc.NormalizeSlug(slug)
	detached := context.WithoutCancel(ctx)
	m.mu.Lock()
	ch := m.group.DoChan(slug, func() (any, error) {
		return m.load(detached, slug)
	})
	m.mu.Unlock()
	return m.wait(ctx, ch)
}

// Refresh regenerates slug unconditionally and overwrites the shared entry. Any in-flight
// load for slug is replaced; callers arriving later join the refresh.
func (m *Manager) Refresh(ctx context.Context, slug string) (*types.Curriculum, error) {
	slug = configsrc.NormalizeSlug(slug)
	detached := context.WithoutCancel(ctx)
	m.mu.Lock()
	m.epochs[slug]++
	epoch := m.epochs[slug]
	m.group.Forget(slug)
	ch := m.group.DoChan(slug, func() (any, error) {
		return m.regenerate(detached, slug, epoch)
	})
	m.mu.Unlock()
	return m.wait(ctx, ch)
}

// GetEnriched returns the curriculum with learning resources on its leaf topics.
func (m *Manager) GetEnriched(ctx context.Context, slug string) (*types.Curriculum, error) {
	slug = configsrc.NormalizeSlug(slug)
	base, err := m.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	detached := context.WithoutCancel(ctx)
	ch := m.group.DoChan("enriched:"+slug, func() (any, error) {
		return m.pipeline.Enrich(detached, slug, base, generator.EnrichOptions{})
	})
	return m.wait(ctx, ch)
}

// List returns metadata for every subject in the shared store.
func (m *Manager) List(ctx context.Context) ([]types.CacheMetadata, error) {
	return m.remote.ListCurricula(ctx)
}

func (m *Manager) wait(ctx context.Context, ch <-chan singleflight.Result) (*types.Curriculum, error) {
	select {
	case res := <-ch:
		if res.Shared {
			m.metrics.ObserveCacheLookup("inflight", "shared")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*types.Curriculum), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) load(ctx context.Context, slug string) (*types.Curriculum, error) {
	epoch := m.currentEpoch(slug)

	entry, err := m.remote.GetCurriculum(ctx, slug)
	if err != nil {
		m.metrics.ObserveCacheLookup("remote", "error")
		m.log.Warn("Shared curriculum read failed", "slug", slug, "error", err)
		entry = nil
	}

	if entry != nil && entry.Curriculum != nil {
		hash, ok, herr := m.hashes.ResolveHash(ctx, slug)
		switch {
		case herr == nil && ok && hash == entry.ConfigHash:
			m.metrics.ObserveCacheLookup("remote", "hit")
			return entry.Curriculum, nil
		case herr != nil || !ok:
			m.metrics.ObserveCacheLookup("remote", "unverified")
			m.log.Warn("Config hash unavailable; serving cached curriculum", "slug", slug, "found", ok, "error", herr)
			return entry.Curriculum, nil
		case m.strict:
			m.metrics.ObserveCacheLookup("remote", "stale")
			m.log.Warn("Cached curriculum is stale; regenerating", "slug", slug, "cached_hash", entry.ConfigHash, "current_hash", hash, "error", herr)
		default:
			m.metrics.ObserveCacheLookup("remote", "stale")
			m.log.Warn("Serving cached curriculum with stale config hash", "slug", slug, "cached_hash", entry.ConfigHash, "current_hash", hash, "error", herr)
			return entry.Curriculum, nil
		}
	} else if err == nil {
		m.metrics.ObserveCacheLookup("remote", "miss")
	}

	res, err := m.pipeline.Generate(ctx, slug)
	if err != nil {
		m.log.Error("Curriculum generation failed", "slug", slug, "error", err)
		return nil, err
	}
	if m.currentEpoch(slug) != epoch {
		m.log.Info("Skipping shared write for superseded load", "slug", slug)
		return res.Curriculum, nil
	}
	if perr := m.persist(ctx, res); perr != nil {
		m.log.Warn("Shared curriculum write failed", "slug", slug, "error", perr)
	}
	return res.Curriculum, nil
}

func (m *Manager) regenerate(ctx context.Context, slug string, epoch uint64) (*types.Curriculum, error) {
	res, err := m.pipeline.Regenerate(ctx, slug)
	if err != nil {
		m.log.Error("Curriculum refresh failed", "slug", slug, "error", err)
		return nil, err
	}
	if m.currentEpoch(slug) != epoch {
		return res.Curriculum, nil
	}
	if err := m.persist(ctx, res); err != nil {
		return nil, fmt.Errorf("persist refreshed curriculum %s: %w", slug, err)
	}
	m.log.Info("Curriculum refreshed", "slug", slug, "config_hash", res.ConfigHash)
	return res.Curriculum, nil
}

func (m *Manager) persist(ctx context.Context, res *generator.Result) error {
	return m.remote.UpsertCurriculum(ctx, store.CachedCurriculum{
		LanguageSlug: res.Slug,
		ConfigHash:   res.ConfigHash,
		Curriculum:   res.Curriculum,
	})
}

func (m *Manager) currentEpoch(slug string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epochs[slug]
}
