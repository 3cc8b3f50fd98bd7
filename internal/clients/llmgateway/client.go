package llmgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/jsonx"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

const (
	DefaultURL   = "http://localhost:8080/api/llm-proxy"
	DefaultModel = "gpt-4o-mini"
)

// Client issues one chat call through the LLM proxy and returns the reply's extracted JSON.
type Client interface {
	CallModel(ctx context.Context, prompt string) (any, error)
}

type Config struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type client struct {
	log        *logger.Logger
	url        string
	model      string
	httpClient *http.Client
	metrics    *observability.Metrics
}

func NewClient(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = DefaultURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &client{
		log:        log.With("service", "LLMGatewayClient"),
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GatewayError is a non-2xx response from the proxy.
type GatewayError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("LLM proxy call failed: %s - %s", e.Status, e.Body)
}

func (e *GatewayError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) CallModel(ctx context.Context, prompt string) (any, error) {
	start := time.Now()
	raw, err := c.doOnce(ctx, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	c.metrics.ObserveLLMRequest(c.model, metricStatus(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	// An envelope that does not decode is treated as empty content.
	var resp chatResponse
	content := ""
	if uErr := json.Unmarshal(raw, &resp); uErr != nil {
		c.log.Warn("LLM proxy response envelope did not decode", "error", uErr, "bytes", len(raw))
	} else if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	c.log.Debug("LLM proxy call complete", "model", c.model, "prompt_chars", len(prompt), "reply_chars", len(content), "elapsed", time.Since(start))
	return jsonx.Extract(content), nil
}

func (c *client) doOnce(ctx context.Context, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("LLM proxy call failed: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(raw)}
	}
	return raw, nil
}

func metricStatus(err error) string {
	if err == nil {
		return "200"
	}
	if ge, ok := err.(*GatewayError); ok {
		return strconv.Itoa(ge.StatusCode)
	}
	return "error"
}
