// Package assets produces per-topic study material (articles, audio scripts, quizzes)
// and caches it in the shared store.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/sotfinder-backend/internal/clients/llmgateway"
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/export"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/keys"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/normalize"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	apperr "github.com/yungbote/sotfinder-backend/internal/pkg/errors"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// Curricula supplies the curriculum a topic is looked up in.
type Curricula interface {
	Get(ctx context.Context, slug string) (*types.Curriculum, error)
}

// HashResolver reports the current config hash for a slug.
type HashResolver interface {
	ResolveHash(ctx context.Context, slug string) (string, bool, error)
}

type Generator struct {
	log       *logger.Logger
	curricula Curricula
	hashes    HashResolver
	llm       llmgateway.Client
	remote    store.Remote
	local     store.Local
	metrics   *observability.Metrics
}

// NewGenerator builds an asset generator. local holds enriched curricula; it may be nil.
func NewGenerator(log *logger.Logger, curricula Curricula, hashes HashResolver, llm llmgateway.Client, remote store.Remote, local store.Local, metrics *observability.Metrics) *Generator {
	if remote == nil {
		remote = store.NopRemote{}
	}
	return &Generator{
		log:       log.With("service", "AssetGenerator"),
		curricula: curricula,
		hashes:    hashes,
		llm:       llm,
		remote:    remote,
		local:     local,
		metrics:   metrics,
	}
}

// Get returns the stored asset without generating. A missing asset, or one built from an
// older config, yields ErrNotCached.
func (g *Generator) Get(ctx context.Context, rawSlug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error) {
	if !assetType.Valid() {
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnsupportedAsset, assetType)
	}
	slug := configsrc.NormalizeSlug(rawSlug)
	hash, hashOK := g.currentHash(ctx, slug)
	cached, err := g.cached(ctx, slug, topicID, assetType, hash, hashOK)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, apperr.ErrNotCached
	}
	return cached, nil
}

// GetOrCreate returns the stored asset when its config hash is current, otherwise it
// generates the asset from the topic in the cached curriculum and stores it.
func (g *Generator) GetOrCreate(ctx context.Context, rawSlug, topicID string, assetType types.AssetType) (out *types.GeneratedAsset, err error) {
	if !assetType.Valid() {
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnsupportedAsset, assetType)
	}
	slug := configsrc.NormalizeSlug(rawSlug)
	ctx, span := observability.Tracer().Start(ctx, "curriculum.asset", trace.WithAttributes(
		attribute.String("curriculum.slug", slug),
		attribute.String("asset.topic_id", topicID),
		attribute.String("asset.type", string(assetType)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	hash, hashOK := g.currentHash(ctx, slug)
	cached, err := g.cached(ctx, slug, topicID, assetType, hash, hashOK)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		g.metrics.ObserveAsset(string(assetType), "cached", 0)
		return cached, nil
	}

	start := time.Now()
	asset, err := g.generate(ctx, slug, topicID, assetType, hash)
	if err != nil {
		g.metrics.ObserveAsset(string(assetType), "error", time.Since(start))
		return nil, err
	}
	g.metrics.ObserveAsset(string(assetType), "generated", time.Since(start))
	return asset, nil
}

func (g *Generator) currentHash(ctx context.Context, slug string) (string, bool) {
	hash, ok, err := g.hashes.ResolveHash(ctx, slug)
	if err != nil {
		g.log.Warn("Config hash lookup failed for asset", "slug", slug, "error", err)
		return "", false
	}
	return hash, ok
}

// cached accepts a stored asset when its hash matches or no current hash is known.
func (g *Generator) cached(ctx context.Context, slug, topicID string, assetType types.AssetType, hash string, hashOK bool) (*types.GeneratedAsset, error) {
	asset, err := g.remote.GetAsset(ctx, slug, topicID, assetType)
	if err != nil {
		return nil, fmt.Errorf("read asset %s/%s/%s: %w", slug, topicID, assetType, err)
	}
	if asset == nil {
		return nil, nil
	}
	if hashOK && asset.ConfigHash != hash {
		g.log.Info("Stored asset is stale", "slug", slug, "topic_id", topicID, "asset_type", assetType, "cached_hash", asset.ConfigHash, "current_hash", hash)
		return nil, nil
	}
	return asset, nil
}

func (g *Generator) generate(ctx context.Context, slug, topicID string, assetType types.AssetType, hash string) (*types.GeneratedAsset, error) {
	topic, err := g.findTopic(ctx, slug, topicID, hash)
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.CallModel(ctx, assetPrompt(assetType, *topic))
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(normalizeContent(assetType, raw, topic.Title))
	if err != nil {
		return nil, fmt.Errorf("encode %s content: %w", assetType, err)
	}

	asset := &types.GeneratedAsset{
		LanguageSlug: slug,
		TopicID:      topicID,
		AssetType:    assetType,
		ConfigHash:   hash,
		Content:      content,
	}
	if err := g.remote.UpsertAsset(ctx, asset); err != nil {
		g.log.Warn("Asset write failed", "slug", slug, "topic_id", topicID, "asset_type", assetType, "error", err)
	}
	g.log.Info("Asset generated", "slug", slug, "topic_id", topicID, "asset_type", assetType)
	return asset, nil
}

// findTopic prefers the enriched curriculum for the current hash so the prompt sees curated
// resources, then falls back to the base curriculum.
func (g *Generator) findTopic(ctx context.Context, slug, topicID, hash string) (*types.Topic, error) {
	if g.local != nil && hash != "" {
		key := keys.CurriculumKey(slug, hash, keys.VariantEnriched)
		enriched, hit, err := g.local.Get(ctx, key)
		if err != nil {
			g.log.Warn("Enriched curriculum read failed", "key", key, "error", err)
		}
		if hit {
			if topic, ok := export.FindTopic(enriched, topicID); ok {
				return topic, nil
			}
		}
	}
	cur, err := g.curricula.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	topic, ok := export.FindTopic(cur, topicID)
	if !ok {
		return nil, fmt.Errorf("%w: topic %q in %s", apperr.ErrNotFound, topicID, slug)
	}
	return topic, nil
}

func normalizeContent(assetType types.AssetType, raw any, title string) any {
	switch assetType {
	case types.AssetSummaryArticle:
		return normalize.SummaryArticle(raw, title)
	case types.AssetAudioLesson:
		return normalize.AudioLesson(raw, title)
	default:
		return normalize.Quiz(raw, title)
	}
}
