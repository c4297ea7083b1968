package voting

import (
	"net/http"

	"cryptoboard/internal/middleware"
	"cryptoboard/internal/pkg/response"
	"cryptoboard/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Save(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	vote, err := h.service.Save(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save vote")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vote": VoteResponse{ContentID: vote.ContentID, Vote: string(vote.Vote)},
	})
}
