package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

func SeedCurriculum(tb testing.TB, ctx context.Context, tx *gorm.DB, slug, hash string, cur *types.Curriculum) *types.CurriculumCacheEntry {
	tb.Helper()
	raw, err := json.Marshal(cur)
	if err != nil {
		tb.Fatalf("encode curriculum: %v", err)
	}
	now := time.Now().UTC()
	row := &types.CurriculumCacheEntry{
		ID:           uuid.New(),
		LanguageSlug: slug,
		ConfigHash:   hash,
		Curriculum:   raw,
		ModelVersion: cur.ModelVersion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed curriculum: %v", err)
	}
	return row
}
