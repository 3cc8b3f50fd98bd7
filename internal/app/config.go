package app

import (
	"strings"
	"time"

	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/envutil"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type Config struct {
	Port string

	CurriculumDataURL        string
	CurriculumConfigUpstream string

	LLMProxyURL string
	LLMModel    string
	LLMTimeout  time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	RemoteStore   RemoteStoreMode
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration

	LocalCachePath          string
	CacheStrictInvalidation bool

	GeneratorResources           string
	GeneratorSubtopicConcurrency int

	URLCheckTimeout     time.Duration
	URLCheckConcurrency int

	CORSOrigins []string
	Otel        observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port: envutil.String("PORT", "8080", log),

		CurriculumDataURL:        envutil.String("CURRICULUM_DATA_URL", "", log),
		CurriculumConfigUpstream: envutil.String("CURRICULUM_CONFIG_UPSTREAM", "", log),

		LLMProxyURL: envutil.String("LLM_PROXY_URL", "", log),
		LLMModel:    envutil.String("LLM_MODEL", "", log),
		LLMTimeout:  envutil.Seconds("LLM_TIMEOUT_SECONDS", 180*time.Second, log),

		OpenAIAPIKey:  envutil.String("OPENAI_API_KEY", "", log),
		OpenAIBaseURL: envutil.String("OPENAI_BASE_URL", "", log),
		OpenAIModel:   envutil.String("OPENAI_DEFAULT_MODEL", "", log),

		RemoteStore:   RemoteStoreMode(strings.ToLower(envutil.String("REMOTE_STORE", string(RemoteStoreNone), log))),
		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),
		RedisPrefix:   envutil.String("REDIS_PREFIX", "sotfinder", log),
		RedisTTL:      envutil.Seconds("REDIS_TTL_SECONDS", 0, log),

		LocalCachePath:          envutil.String("LOCAL_CACHE_PATH", "", log),
		CacheStrictInvalidation: envutil.Bool("CACHE_STRICT_INVALIDATION", false, log),

		GeneratorResources:           envutil.String("GENERATOR_RESOURCES", "none", log),
		GeneratorSubtopicConcurrency: envutil.Int("GENERATOR_SUBTOPIC_CONCURRENCY", 1, log),

		URLCheckTimeout:     envutil.Seconds("URL_CHECK_TIMEOUT_SECONDS", 8*time.Second, log),
		URLCheckConcurrency: envutil.Int("URL_CHECK_CONCURRENCY", 8, log),

		CORSOrigins: splitList(envutil.String("CORS_ORIGINS", "", log)),
		Otel: observability.OtelConfig{
			Enabled:      envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName:  envutil.String("OTEL_SERVICE_NAME", "sotfinder", log),
			Environment:  envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:      envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:     envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:      observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:     envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio:  envutil.Float("OTEL_SAMPLE_RATIO", 1, log),
			StdoutPretty: envutil.Bool("OTEL_STDOUT_PRETTY", false, log),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
