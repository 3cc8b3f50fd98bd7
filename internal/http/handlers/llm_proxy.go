package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"github.com/yungbote/sotfinder-backend/internal/http/response"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

const maxProxyBody = 4 << 20

type LLMProxyConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// LLMProxyHandler forwards chat completions to OpenAI using the server-held key.
type LLMProxyHandler struct {
	log          *logger.Logger
	client       *openai.Client
	defaultModel string
	metrics      *observability.Metrics
}

func NewLLMProxyHandler(log *logger.Logger, cfg LLMProxyConfig, metrics *observability.Metrics) *LLMProxyHandler {
	h := &LLMProxyHandler{
		log:          log.With("handler", "LLMProxyHandler"),
		defaultModel: strings.TrimSpace(cfg.DefaultModel),
		metrics:      metrics,
	}
	if h.defaultModel == "" {
		h.defaultModel = openai.GPT4oMini
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		oc := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		h.client = openai.NewClientWithConfig(oc)
	}
	return h
}

// POST /api/llm-proxy
func (h *LLMProxyHandler) Proxy(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		response.RespondText(c, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.client == nil {
		response.RespondText(c, http.StatusInternalServerError, "OPENAI_API_KEY not set")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBody))
	if err != nil {
		response.RespondText(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		response.RespondText(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		response.RespondText(c, http.StatusBadRequest, "Body must be a JSON object")
		return
	}
	if _, ok := obj["messages"].([]any); !ok {
		response.RespondText(c, http.StatusBadRequest, "Missing 'messages'")
		return
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.RespondText(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Stream {
		response.RespondText(c, http.StatusBadRequest, "Streaming is not supported")
		return
	}
	if req.Model == "" {
		req.Model = h.defaultModel
	}

	start := time.Now()
	resp, err := h.client.CreateChatCompletion(c.Request.Context(), req)
	if err != nil {
		status := upstreamStatus(err)
		h.metrics.ObserveLLMRequest(req.Model, strconv.Itoa(status), time.Since(start))
		h.log.Warn("OpenAI chat completion failed", "model", req.Model, "status", status, "error", err)
		c.JSON(status, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}
	h.metrics.ObserveLLMRequest(req.Model, "200", time.Since(start))
	c.JSON(http.StatusOK, resp)
}

func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return reqErr.HTTPStatusCode
	}
	return http.StatusBadGateway
}
