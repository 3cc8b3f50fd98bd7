package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/http/response"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/configsrc"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/export"
)

// CurriculumService is the cache manager surface the handlers use.
type CurriculumService interface {
	Get(ctx context.Context, slug string) (*types.Curriculum, error)
	GetEnriched(ctx context.Context, slug string) (*types.Curriculum, error)
	Refresh(ctx context.Context, slug string) (*types.Curriculum, error)
	List(ctx context.Context) ([]types.CacheMetadata, error)
}

type LanguageLister interface {
	Languages(ctx context.Context) ([]types.LanguageOption, error)
}

type CurriculumHandler struct {
	curricula CurriculumService
	languages LanguageLister
}

func NewCurriculumHandler(curricula CurriculumService, languages LanguageLister) *CurriculumHandler {
	return &CurriculumHandler{curricula: curricula, languages: languages}
}

// GET /api/languages
func (h *CurriculumHandler) ListLanguages(c *gin.Context) {
	langs, err := h.languages.Languages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"languages": langs})
}

// GET /api/curricula/:slug
func (h *CurriculumHandler) GetCurriculum(c *gin.Context) {
	cur, err := h.curricula.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"curriculum": cur})
}

// GET /api/curricula/:slug/enriched
func (h *CurriculumHandler) GetEnriched(c *gin.Context) {
	cur, err := h.curricula.GetEnriched(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"curriculum": cur})
}

// GET /api/curricula/:slug/canonical-sources
func (h *CurriculumHandler) CanonicalSources(c *gin.Context) {
	cur, err := h.curricula.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"language": cur.Language, "canonical_sources": cur.CanonicalSources})
}

// GET /api/curricula/:slug/export
func (h *CurriculumHandler) Export(c *gin.Context) {
	cur, err := h.curricula.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	md := export.Markdown(cur, c.Query("label"))
	filename := "curriculum.md"
	if slug := configsrc.NormalizeSlug(c.Param("slug")); slug != "" {
		filename = slug + "-curriculum.md"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// POST /api/curricula/:slug/refresh
func (h *CurriculumHandler) Refresh(c *gin.Context) {
	cur, err := h.curricula.Refresh(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"curriculum": cur})
}

// GET /api/cache/curricula
func (h *CurriculumHandler) ListCached(c *gin.Context) {
	list, err := h.curricula.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"curricula": list})
}
