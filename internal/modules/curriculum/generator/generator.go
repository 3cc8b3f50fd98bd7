package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/sotfinder-backend/internal/clients/llmgateway"
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/keys"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/normalize"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	apperr "github.com/yungbote/sotfinder-backend/internal/pkg/errors"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// ConfigSource resolves a subject's raw configuration by slug.
type ConfigSource interface {
	Resolve(ctx context.Context, slug string) (types.TopicConfig, bool, error)
}

type Options struct {
	// SubtopicConcurrency bounds parallel phase-2 calls; values below 1 mean sequential.
	SubtopicConcurrency int
	Resources           ResourceSource
	Metrics             *observability.Metrics
	Now                 func() time.Time
}

// Result is a base curriculum together with the config hash it was generated from.
type Result struct {
	Slug       string
	ConfigHash string
	Curriculum *types.Curriculum
}

type Generator struct {
	log         *logger.Logger
	configs     ConfigSource
	llm         llmgateway.Client
	local       store.Local
	resources   ResourceSource
	metrics     *observability.Metrics
	concurrency int
	now         func() time.Time

	// writes counts Regenerate calls per local key; a Generate that started before the
	// latest Regenerate does not write its result back.
	mu     sync.Mutex
	writes map[string]uint64
}

func New(log *logger.Logger, configs ConfigSource, llm llmgateway.Client, local store.Local, opts Options) *Generator {
	if local == nil {
		local = store.NewMemoryLocal()
	}
	if opts.Resources == nil {
		opts.Resources = NoopResourceSource{}
	}
	if opts.SubtopicConcurrency < 1 {
		opts.SubtopicConcurrency = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		log:         log.With("service", "CurriculumGenerator"),
		configs:     configs,
		llm:         llm,
		local:       local,
		resources:   opts.Resources,
		metrics:     opts.Metrics,
		concurrency: opts.SubtopicConcurrency,
		now:         opts.Now,
		writes:      map[string]uint64{},
	}
}

// Generate returns the base curriculum for slug, serving the local base entry when one
// exists for the current config hash.
func (g *Generator) Generate(ctx context.Context, slug string) (*Result, error) {
	return g.run(ctx, slug, true)
}

// Regenerate always runs the pipeline and overwrites the local base entry.
func (g *Generator) Regenerate(ctx context.Context, slug string) (*Result, error) {
	return g.run(ctx, slug, false)
}

func (g *Generator) run(ctx context.Context, rawSlug string, useCache bool) (res *Result, err error) {
	slug := configsrc.NormalizeSlug(rawSlug)
	ctx, span := observability.Tracer().Start(ctx, "curriculum.generate", trace.WithAttributes(
		attribute.String("curriculum.slug", slug),
		attribute.Bool("curriculum.use_cache", useCache),
	))
	defer func() { endSpan(span, err) }()

	cfg, ok, err := g.configs.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w for language %q", apperr.ErrNoConfig, rawSlug)
	}
	hash := keys.ConfigHash(cfg)
	key := keys.CurriculumKey(slug, hash, keys.VariantBase)
	span.SetAttributes(attribute.String("curriculum.config_hash", hash))

	if useCache {
		cached, hit, lerr := g.local.Get(ctx, key)
		if lerr != nil {
			g.log.Warn("Local curriculum read failed", "key", key, "error", lerr)
		}
		if hit {
			g.metrics.ObserveCacheLookup("local", "hit")
			return &Result{Slug: slug, ConfigHash: hash, Curriculum: cached}, nil
		}
		g.metrics.ObserveCacheLookup("local", "miss")
	}

	kind := "base"
	if !useCache {
		kind = "refresh"
	}
	epoch := g.writeEpoch(key, !useCache)
	start := g.now()
	cur, err := g.pipeline(ctx, slug, cfg)
	g.metrics.ObserveGeneration(kind, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if g.writeEpoch(key, false) != epoch {
		g.log.Info("Skipping local write for superseded generation", "key", key)
	} else if perr := g.local.Put(ctx, key, cur); perr != nil {
		g.log.Warn("Local curriculum write failed", "key", key, "error", perr)
	}
	g.log.Info("Curriculum generated",
		"slug", slug,
		"config_hash", hash,
		"levels", len(cur.OverallLearningPath),
		"degraded_topics", len(cur.DegradedTopics),
		"elapsed", time.Since(start),
	)
	return &Result{Slug: slug, ConfigHash: hash, Curriculum: cur}, nil
}

func (g *Generator) writeEpoch(key string, bump bool) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if bump {
		g.writes[key]++
	}
	return g.writes[key]
}

func (g *Generator) pipeline(ctx context.Context, slug string, cfg types.TopicConfig) (*types.Curriculum, error) {
	base, err := g.generateTopics(ctx, slug, cfg)
	if err != nil {
		return nil, err
	}
	levels, degraded, err := g.expandSubtopics(ctx, slug, base.OverallLearningPath)
	if err != nil {
		return nil, err
	}
	base.OverallLearningPath = levels
	if len(degraded) > 0 {
		base.DegradedTopics = degraded
		g.metrics.AddDegradedTopics(len(degraded))
	}
	return &base, nil
}

// generateTopics is phase 1. Every returned topic has empty subtopics.
func (g *Generator) generateTopics(ctx context.Context, slug string, cfg types.TopicConfig) (types.Curriculum, error) {
	ctx, span := observability.Tracer().Start(ctx, "curriculum.phase1.topics")
	raw, err := g.llm.CallModel(ctx, topicsPrompt(cfg.Outline()))
	endSpan(span, err)
	if err != nil {
		return types.Curriculum{}, fmt.Errorf("generate topics for %s: %w", slug, err)
	}
	cur := normalize.Curriculum(raw, slug, g.now())
	for li := range cur.OverallLearningPath {
		for ti := range cur.OverallLearningPath[li].Topics {
			cur.OverallLearningPath[li].Topics[ti].Subtopics = []types.Topic{}
		}
	}
	return cur, nil
}

// expandSubtopics is phase 2: one call per top-level topic. A failed topic keeps empty
// subtopics and is reported as degraded; cancellation aborts the whole phase.
func (g *Generator) expandSubtopics(ctx context.Context, slug string, levels []types.LearningLevel) ([]types.LearningLevel, []string, error) {
	ctx, span := observability.Tracer().Start(ctx, "curriculum.phase2.subtopics")

	expanded := make([][][]types.Topic, len(levels))
	failed := make([][]bool, len(levels))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for li := range levels {
		expanded[li] = make([][]types.Topic, len(levels[li].Topics))
		failed[li] = make([]bool, len(levels[li].Topics))
		for ti := range levels[li].Topics {
			topic := levels[li].Topics[ti]
			eg.Go(func() error {
				subs, err := g.expandTopic(egctx, slug, topic)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					g.log.Warn("Subtopic expansion failed; keeping topic without subtopics",
						"slug", slug, "topic_id", topic.ID, "topic", topic.Title, "error", err)
					failed[li][ti] = true
					return nil
				}
				expanded[li][ti] = subs
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		endSpan(span, err)
		return nil, nil, err
	}

	out := make([]types.LearningLevel, len(levels))
	var degraded []string
	for li, level := range levels {
		topics := make([]types.Topic, len(level.Topics))
		for ti, topic := range level.Topics {
			if failed[li][ti] {
				degraded = append(degraded, topic.ID)
				topic.Subtopics = []types.Topic{}
			} else {
				topic.Subtopics = expanded[li][ti]
			}
			topics[ti] = topic
		}
		level.Topics = topics
		out[li] = level
	}
	span.SetAttributes(attribute.Int("curriculum.degraded_topics", len(degraded)))
	endSpan(span, nil)
	return out, degraded, nil
}

func (g *Generator) expandTopic(ctx context.Context, slug string, topic types.Topic) ([]types.Topic, error) {
	prompt := subtopicsPrompt(slug, map[string]any{"language": slug, "topic": topic})
	raw, err := g.llm.CallModel(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return normalize.Subtopics(raw), nil
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
