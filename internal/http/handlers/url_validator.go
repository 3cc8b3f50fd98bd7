package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sotfinder-backend/internal/clients/urlcheck"
	"github.com/yungbote/sotfinder-backend/internal/http/response"
)

type URLChecker interface {
	Check(ctx context.Context, urls []string) []urlcheck.Result
}

type URLValidatorHandler struct {
	checker URLChecker
}

func NewURLValidatorHandler(checker URLChecker) *URLValidatorHandler {
	return &URLValidatorHandler{checker: checker}
}

// POST /api/url-validator
func (h *URLValidatorHandler) Validate(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodPost:
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	var payload struct {
		URLs any `json:"urls"`
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	raw, _ := payload.URLs.([]any)
	urls := urlcheck.Filter(raw)
	if len(urls) == 0 {
		response.RespondOK(c, gin.H{"results": []urlcheck.Result{}})
		return
	}
	response.RespondOK(c, gin.H{"results": h.checker.Check(c.Request.Context(), urls)})
}
