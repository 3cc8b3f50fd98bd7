package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/sotfinder-backend/internal/data/repos/caching"
	"github.com/yungbote/sotfinder-backend/internal/data/repos/feedback"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type CurriculumCacheRepo = caching.CurriculumCacheRepo
type GeneratedAssetRepo = caching.GeneratedAssetRepo
type LocalCacheRepo = caching.LocalCacheRepo
type RemoteStore = caching.RemoteStore

type FeedbackRepo = feedback.FeedbackRepo

func NewCurriculumCacheRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumCacheRepo {
	return caching.NewCurriculumCacheRepo(db, baseLog)
}
func NewGeneratedAssetRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedAssetRepo {
	return caching.NewGeneratedAssetRepo(db, baseLog)
}
func NewLocalCacheRepo(db *gorm.DB, baseLog *logger.Logger) *LocalCacheRepo {
	return caching.NewLocalCacheRepo(db, baseLog)
}
func NewRemoteStore(db *gorm.DB, baseLog *logger.Logger) *RemoteStore {
	return caching.NewRemoteStore(db, baseLog)
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return feedback.NewFeedbackRepo(db, baseLog)
}
