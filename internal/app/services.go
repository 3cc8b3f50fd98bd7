package app

import (
	"net/http"
	"time"

	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/assets"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/cache"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/generator"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Services struct {
	Configs   *configsrc.Resolver
	Generator *generator.Generator
	Curricula *cache.Manager
	Assets    *assets.Generator
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos, remote *RemoteStore, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	source := configsrc.NewSource(cfg.CurriculumDataURL, &http.Client{Timeout: 30 * time.Second})
	configs := configsrc.NewResolver(log, source)

	gen := generator.New(log, configs, clients.LLM, reposet.Local, generator.Options{
		SubtopicConcurrency: cfg.GeneratorSubtopicConcurrency,
		Resources:           generator.NewResourceSource(cfg.GeneratorResources, clients.LLM),
		Metrics:             metrics,
	})

	curricula := cache.NewManager(log, gen, configs, remote.Remote, cache.Options{
		StrictInvalidation: cfg.CacheStrictInvalidation,
		Metrics:            metrics,
	})

	return Services{
		Configs:   configs,
		Generator: gen,
		Curricula: curricula,
		Assets:    assets.NewGenerator(log, curricula, configs, clients.LLM, remote.Remote, reposet.Local, metrics),
	}
}
