package caching

import (
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
)

func storeEntry(slug, hash string, cur *types.Curriculum) store.CachedCurriculum {
	return store.CachedCurriculum{LanguageSlug: slug, ConfigHash: hash, Curriculum: cur}
}
