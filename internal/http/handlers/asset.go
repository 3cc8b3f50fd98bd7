package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/http/response"
)

type AssetService interface {
	Get(ctx context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error)
	GetOrCreate(ctx context.Context, slug, topicID string, assetType types.AssetType) (*types.GeneratedAsset, error)
}

type AssetHandler struct {
	assets AssetService
}

func NewAssetHandler(assets AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// GET /api/curricula/:slug/topics/:topicId/assets/:type
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assets.Get(c.Request.Context(), c.Param("slug"), c.Param("topicId"), types.AssetType(c.Param("type")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

// POST /api/curricula/:slug/topics/:topicId/assets/:type
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	asset, err := h.assets.GetOrCreate(c.Request.Context(), c.Param("slug"), c.Param("topicId"), types.AssetType(c.Param("type")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}
