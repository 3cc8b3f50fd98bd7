package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// TTL expires entries; zero keeps them until overwritten.
	TTL time.Duration
}

// Store is a store.Remote on redis. Curricula live under {prefix}:curriculum:{slug}, with the
// slug set under {prefix}:curricula; assets under {prefix}:asset:{slug}:{topic}:{type}.
type Store struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

var _ store.Remote = (*Store)(nil)

func NewStore(log *logger.Logger, cfg Config) (*Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "sotfinder"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{
		log:    log.With("service", "RedisRemoteStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

type curriculumRecord struct {
	LanguageSlug string            `json:"language_slug"`
	ConfigHash   string            `json:"config_hash"`
	Curriculum   *types.Curriculum `json:"curriculum"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (s *Store) curriculumKey(slug string) string { return s.prefix + ":curriculum:" + slug }
func (s *Store) indexKey() string                 { return s.prefix + ":curricula" }
func (s *Store) assetKey(slug, topicID string, t types.AssetType) string {
	return s.prefix + ":asset:" + slug + ":" + topicID + ":" + string(t)
}

func (s *Store) GetCurriculum(ctx context.Context, slug string) (*store.CachedCurriculum, error) {
	raw, err := s.rdb.Get(ctx, s.curriculumKey(slug)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec curriculumRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Curriculum == nil {
		s.log.Warn("Shared curriculum entry did not decode; treating as miss", "slug", slug, "error", err)
		return nil, nil
	}
	return &store.CachedCurriculum{
		LanguageSlug: rec.LanguageSlug,
		ConfigHash:   rec.ConfigHash,
		Curriculum:   rec.Curriculum,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func (s *Store) UpsertCurriculum(ctx context.Context, entry store.CachedCurriculum) error {
	if entry.Curriculum == nil || entry.LanguageSlug == "" {
		return nil
	}
	raw, err := json.Marshal(curriculumRecord{
		LanguageSlug: entry.LanguageSlug,
		ConfigHash:   entry.ConfigHash,
		Curriculum:   entry.Curriculum,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode curriculum %s: %w", entry.LanguageSlug, err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.curriculumKey(entry.LanguageSlug), raw, s.ttl)
		p.SAdd(ctx, s.indexKey(), entry.LanguageSlug)
		return nil
	})
	return err
}

// ListCurricula reads every indexed slug and drops index members whose entry expired.
func (s *Store) ListCurricula(ctx context.Context) ([]types.CacheMetadata, error) {
	slugs, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(slugs)
	out := make([]types.CacheMetadata, 0, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = s.curriculumKey(slug)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	var stale []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, slugs[i])
			continue
		}
		var rec curriculumRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			continue
		}
		out = append(out, types.CacheMetadata{
			LanguageSlug: slugs[i],
			UpdatedAt:    rec.UpdatedAt.UTC().Format(time.RFC3339),
			ConfigHash:   rec.ConfigHash,
		})
	}
	if len(stale) > 0 {
		if err := s.rdb.SRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			s.log.Warn("Failed to prune curriculum index", "error", err)
		}
	}
	return out, nil
}

func (s *Store) GetAsset(ctx context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error) {
	raw, err := s.rdb.Get(ctx, s.assetKey(slug, topicID, assetType)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var asset types.GeneratedAsset
	if err := json.Unmarshal(raw, &asset); err != nil {
		s.log.Warn("Stored asset did not decode; treating as miss", "slug", slug, "topic_id", topicID, "error", err)
		return nil, nil
	}
	return &asset, nil
}

// UpsertAsset keeps the id and created_at of an existing entry.
func (s *Store) UpsertAsset(ctx context.Context, asset *types.GeneratedAsset) error {
	if asset == nil {
		return nil
	}
	prev, err := s.GetAsset(ctx, asset.LanguageSlug, asset.TopicID, asset.AssetType)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if prev != nil {
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
	raw, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("encode asset: %w", err)
	}
	return s.rdb.Set(ctx, s.assetKey(asset.LanguageSlug, asset.TopicID, asset.AssetType), raw, s.ttl).Err()
}
