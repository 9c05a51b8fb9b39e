package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"me": me})
}

func (uh *UserHandler) UpdateSkillLevel(c *gin.Context) {
	var req struct {
		SkillLevel string `json:"skill_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, errors.New("invalid request body"))
		return
	}
	me, err := uh.userService.UpdateSkillLevel(c.Request.Context(), req.SkillLevel)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"me": me})
}
