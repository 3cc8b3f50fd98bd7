package caching

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CurriculumCacheEntry is the shared-store row for one subject's base curriculum.
type CurriculumCacheEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LanguageSlug string         `gorm:"type:text;not null;uniqueIndex:idx_curriculum_cache_slug" json:"language_slug"`
	ConfigHash   string         `gorm:"type:text;not null;index" json:"config_hash"`
	Curriculum   datatypes.JSON `gorm:"not null" json:"curriculum"`
	ModelVersion string         `gorm:"type:text" json:"model_version"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (CurriculumCacheEntry) TableName() string { return "curriculum_cache" }

// GeneratedAssetEntry stores one generated asset per (subject, topic, asset type).
type GeneratedAssetEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LanguageSlug string `gorm:"type:text;not null;uniqueIndex:idx_generated_asset_key" json:"language_slug"`
	TopicID      string `gorm:"type:text;not null;uniqueIndex:idx_generated_asset_key" json:"topic_id"`
	AssetType    string `gorm:"type:text;not null;uniqueIndex:idx_generated_asset_key" json:"asset_type"`

	ConfigHash string         `gorm:"type:text;not null;index" json:"config_hash"`
	Content    datatypes.JSON `gorm:"not null" json:"content"`
	AudioURL   string         `gorm:"type:text" json:"audio_url,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (GeneratedAssetEntry) TableName() string { return "generated_asset" }

// LocalCacheEntry mirrors generated curricula on the local disk, keyed by the full
// slug:hash:variant cache key.
type LocalCacheEntry struct {
	CacheKey   string         `gorm:"type:text;primaryKey" json:"cache_key"`
	Curriculum datatypes.JSON `gorm:"not null" json:"curriculum"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (LocalCacheEntry) TableName() string { return "local_curriculum_cache" }
