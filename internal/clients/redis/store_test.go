package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis store tests")
	}
	s, err := NewStore(logger.Nop(), Config{Addr: addr, Prefix: "sotfinder-test-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := s.rdb.Keys(ctx, s.prefix+":*").Result()
		if len(keys) > 0 {
			_ = s.rdb.Del(ctx, keys...).Err()
		}
		_ = s.Close()
	})
	return s
}

func TestNewStoreRequiresAddr(t *testing.T) {
	if _, err := NewStore(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error without address")
	}
}

func TestStoreCurricula(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if got, err := s.GetCurriculum(ctx, "java"); err != nil || got != nil {
		t.Fatalf("expected miss, got=%v err=%v", got, err)
	}
	entry := store.CachedCurriculum{LanguageSlug: "java", ConfigHash: "h1", Curriculum: &types.Curriculum{Language: "Java"}}
	if err := s.UpsertCurriculum(ctx, entry); err != nil {
		t.Fatalf("UpsertCurriculum: %v", err)
	}
	got, err := s.GetCurriculum(ctx, "java")
	if err != nil || got == nil || got.ConfigHash != "h1" || got.Curriculum.Language != "Java" {
		t.Fatalf("GetCurriculum: got=%+v err=%v", got, err)
	}
	list, err := s.ListCurricula(ctx)
	if err != nil || len(list) != 1 || list[0].LanguageSlug != "java" {
		t.Fatalf("ListCurricula: %+v err=%v", list, err)
	}
}

func TestStoreAssets(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := &types.GeneratedAsset{LanguageSlug: "java", TopicID: "t1", AssetType: types.AssetQuiz, ConfigHash: "h1", Content: json.RawMessage(`{}`)}
	if err := s.UpsertAsset(ctx, a); err != nil {
		t.Fatalf("UpsertAsset: %v", err)
	}
	b := &types.GeneratedAsset{LanguageSlug: "java", TopicID: "t1", AssetType: types.AssetQuiz, ConfigHash: "h2", Content: json.RawMessage(`{}`)}
	if err := s.UpsertAsset(ctx, b); err != nil {
		t.Fatalf("UpsertAsset: %v", err)
	}
	if b.ID != a.ID {
		t.Fatalf("expected id to survive replace")
	}
	got, err := s.GetAsset(ctx, "java", "t1", types.AssetQuiz)
	if err != nil || got == nil || got.ConfigHash != "h2" {
		t.Fatalf("GetAsset: got=%+v err=%v", got, err)
	}
}
