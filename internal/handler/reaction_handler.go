package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/service"
	"github.com/edulane/discussion/pkg/apperror"
	"github.com/edulane/discussion/pkg/response"
	"github.com/edulane/discussion/pkg/validator"
)

type ReactionHandler struct {
	service service.ReactionService
}

func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	var req dto.ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
