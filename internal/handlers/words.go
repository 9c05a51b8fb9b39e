package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/services"
)

type WordsHandler struct {
	learningService services.LearningService
}

func NewWordsHandler(learningService services.LearningService) *WordsHandler {
	return &WordsHandler{learningService: learningService}
}

func (wh *WordsHandler) GetLearningWords(c *gin.Context) {
	words, err := wh.learningService.GetLearningWords(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, words)
}

func (wh *WordsHandler) GetUserWords(c *gin.Context) {
	lastSeenAt := c.Query("lastSeenAt")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, errors.New("limit must be an integer"))
			return
		}
		limit = parsed
	}
	page, err := wh.learningService.GetUserWords(c.Request.Context(), lastSeenAt, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (wh *WordsHandler) UpdateWordProgress(c *gin.Context) {
	var req struct {
		UserWordID string `json:"userWordId"`
		Increment  *int   `json:"increment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, errors.New("invalid request body"))
		return
	}
	if req.Increment == nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, errors.New("increment is required"))
		return
	}
	newProgress, err := wh.learningService.UpdateWordProgress(c.Request.Context(), req.UserWordID, *req.Increment)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "newProgress": newProgress})
}
