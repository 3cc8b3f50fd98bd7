package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/sotfinder-backend/internal/data/db"
	"github.com/yungbote/sotfinder-backend/internal/data/repos"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Repos struct {
	// Local is the process-private curriculum mirror: memory, backed by sqlite when
	// LOCAL_CACHE_PATH is set.
	Local    store.Local
	LocalDB  *gorm.DB
	Feedback repos.FeedbackRepo
}

func wireRepos(log *logger.Logger, cfg Config, remote *RemoteStore) (Repos, error) {
	log.Info("Wiring repos...")

	var out Repos
	if path := strings.TrimSpace(cfg.LocalCachePath); path != "" {
		localDB, err := db.OpenSQLite(log, path)
		if err != nil {
			return Repos{}, fmt.Errorf("open local cache: %w", err)
		}
		if err := db.AutoMigrateLocal(localDB); err != nil {
			_ = closeDB(localDB)
			return Repos{}, fmt.Errorf("local cache automigrate: %w", err)
		}
		out.LocalDB = localDB
		out.Local = store.NewTieredLocal(repos.NewLocalCacheRepo(localDB, log))
	} else {
		out.Local = store.NewMemoryLocal()
	}

	switch {
	case remote != nil && remote.DB != nil:
		out.Feedback = repos.NewFeedbackRepo(remote.DB, log)
	case out.LocalDB != nil:
		out.Feedback = repos.NewFeedbackRepo(out.LocalDB, log)
	default:
		log.Warn("No database configured, feedback endpoints disabled")
	}
	return out, nil
}
