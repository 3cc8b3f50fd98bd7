package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sotfinder-backend/internal/data/repos"
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/http/response"
	"github.com/yungbote/sotfinder-backend/internal/pkg/dbctx"
)

type FeedbackHandler struct {
	feedback repos.FeedbackRepo
}

func NewFeedbackHandler(feedback repos.FeedbackRepo) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type feedbackRequest struct {
	Message   string         `json:"message"`
	Category  string         `json:"category"`
	Context   string         `json:"context"`
	Metadata  map[string]any `json:"metadata"`
	UserID    *string        `json:"user_id"`
	UserEmail *string        `json:"user_email"`
}

// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("message is required"))
		return
	}
	if !types.FeedbackCategory(req.Category).Valid() {
		response.RespondError(c, http.StatusBadRequest, "invalid_category", errors.New("category must be one of experience, content, bug, idea"))
		return
	}
	if req.Metadata == nil {
		req.Metadata = map[string]any{}
	}
	meta, err := json.Marshal(req.Metadata)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rows, err := h.feedback.Create(dbctx.Context{Ctx: c.Request.Context()}, []*types.Feedback{{
		Message:   req.Message,
		Category:  req.Category,
		Context:   req.Context,
		Metadata:  meta,
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
	}})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "feedback_store_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": rows[0]})
}

// GET /api/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !types.FeedbackCategory(category).Valid() {
		response.RespondError(c, http.StatusBadRequest, "invalid_category", errors.New("unknown category"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "250"))
	rows, err := h.feedback.ListRecent(dbctx.Context{Ctx: c.Request.Context()}, category, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "feedback_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"feedback": rows})
}
