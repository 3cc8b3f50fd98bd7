package generator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/keys"
	"github.com/yungbote/sotfinder-backend/internal/observability"
)

// EnrichOptions override the trust profiles and asset scoring read from the config.
type EnrichOptions struct {
	TrustProfiles map[string]any
	AssetScoring  any
}

// Enrich attaches learning resources to every leaf topic of cur and caches the result under
// the enriched key. Topics with subtopics get an empty resource list. cur is not modified.
func (g *Generator) Enrich(ctx context.Context, rawSlug string, cur *types.Curriculum, opts EnrichOptions) (out *types.Curriculum, err error) {
	if cur == nil {
		return nil, fmt.Errorf("enrich %s: nil curriculum", rawSlug)
	}
	slug := configsrc.NormalizeSlug(rawSlug)
	ctx, span := observability.Tracer().Start(ctx, "curriculum.enrich", trace.WithAttributes(attribute.String("curriculum.slug", slug)))
	defer func() { endSpan(span, err) }()

	hash, trust, scoring := g.enrichInputs(ctx, slug, cur, opts)
	key := keys.CurriculumKey(slug, hash, keys.VariantEnriched)

	cached, hit, lerr := g.local.Get(ctx, key)
	if lerr != nil {
		g.log.Warn("Local curriculum read failed", "key", key, "error", lerr)
	}
	if hit {
		g.metrics.ObserveCacheLookup("local", "hit")
		return cached, nil
	}

	start := g.now()
	levels := make([]types.LearningLevel, len(cur.OverallLearningPath))
	for li, level := range cur.OverallLearningPath {
		topics := make([]types.Topic, len(level.Topics))
		for ti, topic := range level.Topics {
			enriched, terr := g.enrichTopic(ctx, slug, topic, nil, trust, scoring)
			if terr != nil {
				g.metrics.ObserveGeneration("enriched", terr, time.Since(start))
				return nil, terr
			}
			topics[ti] = enriched
		}
		level.Topics = topics
		levels[li] = level
	}
	result := *cur
	result.OverallLearningPath = levels
	g.metrics.ObserveGeneration("enriched", nil, time.Since(start))

	if perr := g.local.Put(ctx, key, &result); perr != nil {
		g.log.Warn("Local curriculum write failed", "key", key, "error", perr)
	}
	return &result, nil
}

// enrichInputs picks the cache hash and scoring inputs. Without a resolvable config the
// curriculum's own hash keys the entry.
func (g *Generator) enrichInputs(ctx context.Context, slug string, cur *types.Curriculum, opts EnrichOptions) (string, map[string]any, any) {
	trust, scoring := opts.TrustProfiles, opts.AssetScoring
	cfg, ok, err := g.configs.Resolve(ctx, slug)
	if err != nil {
		g.log.Warn("Config lookup failed during enrichment", "slug", slug, "error", err)
	}
	if err != nil || !ok {
		if trust == nil {
			trust = map[string]any{}
		}
		return keys.Hash(cur), trust, scoring
	}
	if trust == nil {
		trust = cfg.TrustProfiles()
	}
	if scoring == nil {
		scoring = cfg.AssetScoring()
	}
	return keys.ConfigHash(cfg), trust, scoring
}

// enrichTopic walks children first; only leaves are sent to the resource source.
func (g *Generator) enrichTopic(ctx context.Context, slug string, topic types.Topic, parents []string, trust map[string]any, scoring any) (types.Topic, error) {
	path := append(append([]string(nil), parents...), topic.Title)
	if topic.Title == "" {
		path = path[:len(path)-1]
	}

	subs := make([]types.Topic, len(topic.Subtopics))
	for i, sub := range topic.Subtopics {
		enriched, err := g.enrichTopic(ctx, slug, sub, path, trust, scoring)
		if err != nil {
			return types.Topic{}, err
		}
		subs[i] = enriched
	}
	topic.Subtopics = subs

	if !topic.IsLeaf() {
		topic.LearningResources = []types.LearningResource{}
		return topic, nil
	}

	resources, err := g.resources.Resources(ctx, ResourceRequest{
		Language:      slug,
		TopicPath:     path,
		Title:         topic.Title,
		TrustProfiles: trust,
		AssetScoring:  scoring,
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.Topic{}, ctx.Err()
		}
		g.log.Warn("Resource generation failed; leaving topic without resources", "slug", slug, "topic_id", topic.ID, "error", err)
		resources = nil
	}
	if resources == nil {
		resources = []types.LearningResource{}
	}
	topic.LearningResources = resources
	return topic, nil
}
