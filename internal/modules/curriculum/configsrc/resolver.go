package configsrc

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/keys"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// Resolver memoizes the configuration list for its lifetime and resolves configs by slug.
// Failed loads are not memoized.
type Resolver struct {
	log    *logger.Logger
	source Source

	mu     sync.RWMutex
	loaded bool
	all    []types.TopicConfig
	index  *SlugIndex

	group singleflight.Group
}

func NewResolver(log *logger.Logger, source Source) *Resolver {
	return &Resolver{log: log.With("service", "ConfigResolver"), source: source}
}

// FetchAll returns every config document. Concurrent first callers share one load.
func (r *Resolver) FetchAll(ctx context.Context) ([]types.TopicConfig, error) {
	if _, err := r.loadIndex(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.TopicConfig, len(r.all))
	copy(out, r.all)
	return out, nil
}

func (r *Resolver) loadIndex(ctx context.Context) (*SlugIndex, error) {
	r.mu.RLock()
	if r.loaded {
		ix := r.index
		r.mu.RUnlock()
		return ix, nil
	}
	r.mu.RUnlock()

	_, err, _ := r.group.Do("configs", func() (any, error) {
		r.mu.RLock()
		done := r.loaded
		r.mu.RUnlock()
		if done {
			return nil, nil
		}
		configs, err := r.source.Load(ctx)
		if err != nil {
			r.log.Warn("Curriculum config load failed", "error", err)
			return nil, err
		}
		ix := BuildSlugIndex(configs)
		r.mu.Lock()
		r.all = configs
		r.index = ix
		r.loaded = true
		r.mu.Unlock()
		r.log.Info("Curriculum configs loaded", "configs", len(configs), "slugs", ix.Len())
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index, nil
}

// Resolve looks up the config for slug after normalizing it.
func (r *Resolver) Resolve(ctx context.Context, slug string) (types.TopicConfig, bool, error) {
	ix, err := r.loadIndex(ctx)
	if err != nil {
		return nil, false, err
	}
	cfg, ok := ix.Lookup(NormalizeSlug(slug))
	return cfg, ok, nil
}

// ResolveHash returns the config hash for slug, or ok=false when there is no config.
func (r *Resolver) ResolveHash(ctx context.Context, slug string) (string, bool, error) {
	cfg, ok, err := r.Resolve(ctx, slug)
	if err != nil || !ok {
		return "", ok, err
	}
	return keys.ConfigHash(cfg), true, nil
}

// Languages lists every indexed subject in index order.
func (r *Resolver) Languages(ctx context.Context) ([]types.LanguageOption, error) {
	ix, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.LanguageOption, 0, ix.Len())
	for _, slug := range ix.Slugs() {
		cfg, _ := ix.Lookup(slug)
		label := cfg.Name()
		if label == "" {
			label = slug
		}
		out = append(out, types.LanguageOption{Slug: slug, Label: label})
	}
	return out, nil
}
