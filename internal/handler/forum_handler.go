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

type ForumHandler struct {
	service service.ForumService
}

func NewForumHandler(service service.ForumService) *ForumHandler {
	return &ForumHandler{service: service}
}

func (h *ForumHandler) CreateForum(c *gin.Context) {
	var req dto.CreateForumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	forum, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, forum)
}

func (h *ForumHandler) GetAllForums(c *gin.Context) {
	forums, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forums": forums})
}
