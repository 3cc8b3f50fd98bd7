package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sotfinder-backend/internal/clients/llmgateway"
	"github.com/yungbote/sotfinder-backend/internal/http/response"
	apperr "github.com/yungbote/sotfinder-backend/internal/pkg/errors"
	"github.com/yungbote/sotfinder-backend/internal/pkg/httpx"
)

// statusFor maps service errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	var gw *llmgateway.GatewayError
	switch {
	case errors.Is(err, apperr.ErrNoConfig), errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrUnsupportedAsset):
		return http.StatusBadRequest, "unsupported_asset_type"
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, apperr.ErrNotCached):
		return http.StatusConflict, "not_cached"
	case errors.Is(err, apperr.ErrMissingSource):
		return http.StatusInternalServerError, "config_source_missing"
	case errors.As(err, &gw):
		return http.StatusBadGateway, "llm_gateway_error"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case httpx.StatusCode(err) != 0:
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_error"
}

func respondServiceError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	response.RespondError(c, status, code, err)
}
