package app

import (
	"strings"

	sothttp "github.com/yungbote/sotfinder-backend/internal/http"
	httpH "github.com/yungbote/sotfinder-backend/internal/http/handlers"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Curriculum   *httpH.CurriculumHandler
	Asset        *httpH.AssetHandler
	LLMProxy     *httpH.LLMProxyHandler
	URLValidator *httpH.URLValidatorHandler
	ConfigProxy  *httpH.ConfigProxyHandler
	Feedback     *httpH.FeedbackHandler
}

func wireHandlers(log *logger.Logger, cfg Config, clients Clients, reposet Repos, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Health:       httpH.NewHealthHandler(),
		Curriculum:   httpH.NewCurriculumHandler(services.Curricula, services.Configs),
		Asset:        httpH.NewAssetHandler(services.Assets),
		URLValidator: httpH.NewURLValidatorHandler(clients.URLChecker),
		LLMProxy: httpH.NewLLMProxyHandler(log, httpH.LLMProxyConfig{
			APIKey:       cfg.OpenAIAPIKey,
			BaseURL:      cfg.OpenAIBaseURL,
			DefaultModel: cfg.OpenAIModel,
		}, metrics),
		ConfigProxy: httpH.NewConfigProxyHandler(log, configUpstream(cfg), nil),
	}
	if reposet.Feedback != nil {
		h.Feedback = httpH.NewFeedbackHandler(reposet.Feedback)
	}
	return h
}

// configUpstream falls back to the curriculum data URL when that is an HTTP location.
func configUpstream(cfg Config) string {
	if cfg.CurriculumConfigUpstream != "" {
		return cfg.CurriculumConfigUpstream
	}
	if strings.HasPrefix(cfg.CurriculumDataURL, "http://") || strings.HasPrefix(cfg.CurriculumDataURL, "https://") {
		return cfg.CurriculumDataURL
	}
	return ""
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *sothttp.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return sothttp.NewServer(sothttp.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		ServiceName:         serviceName,
		CORSOrigins:         cfg.CORSOrigins,
		HealthHandler:       handlers.Health,
		CurriculumHandler:   handlers.Curriculum,
		AssetHandler:        handlers.Asset,
		LLMProxyHandler:     handlers.LLMProxy,
		URLValidatorHandler: handlers.URLValidator,
		ConfigProxyHandler:  handlers.ConfigProxy,
		FeedbackHandler:     handlers.Feedback,
	})
}
