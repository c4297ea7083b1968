package dashboard

import (
	"net/http"

	"cryptoboard/internal/middleware"
	"cryptoboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the aggregated dashboard for the authenticated user.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	data, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard data")
		return
	}

	response.Success(c, http.StatusOK, data)
}
