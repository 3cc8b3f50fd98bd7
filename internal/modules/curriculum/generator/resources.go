package generator

import (
	"context"

	"github.com/yungbote/sotfinder-backend/internal/clients/llmgateway"
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/normalize"
)

// ResourceRequest describes one leaf topic to enrich.
type ResourceRequest struct {
	Language      string
	TopicPath     []string
	Title         string
	TrustProfiles map[string]any
	AssetScoring  any
}

// ResourceSource produces learning resources for a leaf topic.
type ResourceSource interface {
	Resources(ctx context.Context, req ResourceRequest) ([]types.LearningResource, error)
}

// NoopResourceSource attaches no resources.
type NoopResourceSource struct{}

func (NoopResourceSource) Resources(context.Context, ResourceRequest) ([]types.LearningResource, error) {
	return []types.LearningResource{}, nil
}

// LLMResourceSource asks the gateway for ranked resources.
type LLMResourceSource struct {
	LLM llmgateway.Client
}

func (s LLMResourceSource) Resources(ctx context.Context, req ResourceRequest) ([]types.LearningResource, error) {
	raw, err := s.LLM.CallModel(ctx, resourcesPrompt(req))
	if err != nil {
		return nil, err
	}
	resources := normalize.Resources(raw)
	for i := range resources {
		resources[i] = normalize.ScoreAuthority(resources[i])
	}
	return resources, nil
}

// NewResourceSource maps the GENERATOR_RESOURCES setting to a source.
func NewResourceSource(mode string, llm llmgateway.Client) ResourceSource {
	if mode == "llm" && llm != nil {
		return LLMResourceSource{LLM: llm}
	}
	return NoopResourceSource{}
}
