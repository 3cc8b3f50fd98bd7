package app

import (
	"fmt"

	"github.com/yungbote/sotfinder-backend/internal/clients/llmgateway"
	"github.com/yungbote/sotfinder-backend/internal/clients/urlcheck"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Clients struct {
	LLM        llmgateway.Client
	URLChecker *urlcheck.Checker
}

func wireClients(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	llm, err := llmgateway.NewClient(log, llmgateway.Config{
		URL:     cfg.LLMProxyURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init llm gateway client: %w", err)
	}

	checker := urlcheck.NewChecker(log, urlcheck.Options{
		Timeout:     cfg.URLCheckTimeout,
		Concurrency: cfg.URLCheckConcurrency,
		Metrics:     metrics,
	})

	return Clients{LLM: llm, URLChecker: checker}, nil
}
