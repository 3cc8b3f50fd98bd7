package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/sotfinder-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sotfinder-backend/internal/http/middleware"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	CurriculumHandler   *httpH.CurriculumHandler
	AssetHandler        *httpH.AssetHandler
	LLMProxyHandler     *httpH.LLMProxyHandler
	URLValidatorHandler *httpH.URLValidatorHandler
	ConfigProxyHandler  *httpH.ConfigProxyHandler
	FeedbackHandler     *httpH.FeedbackHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RouteCORS(cfg.CORSOrigins, map[string]gin.HandlerFunc{
		"/api/url-validator":     httpMW.OpenCORS(http.MethodPost, http.MethodOptions),
		"/api/curriculum-config": httpMW.OpenCORS(http.MethodGet, http.MethodOptions),
	}))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Edge endpoints check their own methods.
		if cfg.LLMProxyHandler != nil {
			api.Any("/llm-proxy", cfg.LLMProxyHandler.Proxy)
		}
		if cfg.URLValidatorHandler != nil {
			api.Any("/url-validator", cfg.URLValidatorHandler.Validate)
		}
		if cfg.ConfigProxyHandler != nil {
			api.Any("/curriculum-config", cfg.ConfigProxyHandler.Forward)
		}

		// Curricula
		if cfg.CurriculumHandler != nil {
			api.GET("/languages", cfg.CurriculumHandler.ListLanguages)
			api.GET("/curricula/:slug", cfg.CurriculumHandler.GetCurriculum)
			api.GET("/curricula/:slug/enriched", cfg.CurriculumHandler.GetEnriched)
			api.GET("/curricula/:slug/export", cfg.CurriculumHandler.Export)
			api.GET("/curricula/:slug/canonical-sources", cfg.CurriculumHandler.CanonicalSources)
			api.POST("/curricula/:slug/refresh", cfg.CurriculumHandler.Refresh)
			api.GET("/cache/curricula", cfg.CurriculumHandler.ListCached)
		}

		// Assets
		if cfg.AssetHandler != nil {
			api.GET("/curricula/:slug/topics/:topicId/assets/:type", cfg.AssetHandler.GetAsset)
			api.POST("/curricula/:slug/topics/:topicId/assets/:type", cfg.AssetHandler.CreateAsset)
		}

		// Feedback
		if cfg.FeedbackHandler != nil {
			api.POST("/feedback", cfg.FeedbackHandler.Submit)
			api.GET("/feedback", cfg.FeedbackHandler.List)
		}
	}

	return r
}
