package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sotfinder-backend/internal/http/response"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

// ConfigProxyHandler relays the upstream topic-configuration document to browsers.
type ConfigProxyHandler struct {
	log      *logger.Logger
	upstream string
	client   *http.Client
}

func NewConfigProxyHandler(log *logger.Logger, upstream string, client *http.Client) *ConfigProxyHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &ConfigProxyHandler{
		log:      log.With("handler", "ConfigProxyHandler"),
		upstream: strings.TrimSpace(upstream),
		client:   client,
	}
}

// GET /api/curriculum-config
func (h *ConfigProxyHandler) Forward(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	default:
		response.RespondText(c, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.upstream == "" {
		response.RespondError(c, http.StatusInternalServerError, "config_source_missing", errors.New("curriculum config upstream is not configured"))
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.upstream, nil)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "config_source_invalid", err)
		return
	}
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("Config upstream request failed", "url", h.upstream, "error", err)
		response.RespondError(c, http.StatusBadGateway, "upstream_error", err)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Status(resp.StatusCode)
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.log.Warn("Config upstream copy failed", "error", err)
	}
}
