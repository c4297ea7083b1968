package preferences

import (
	"errors"
	"net/http"

	"cryptoboard/internal/domain"
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

// Get returns the user's saved preferences, 404 when onboarding has not run.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	prefs, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrPreferencesNotFound) {
			response.Error(c, http.StatusNotFound, "PREFERENCES_NOT_FOUND", "Preferences not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch preferences")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"preferences": toResponse(prefs)})
}

// Save creates or fully replaces the user's preferences.
func (h *Handler) Save(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	prefs, err := h.service.Save(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save preferences")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"preferences": toResponse(prefs)})
}

func toResponse(p *domain.Preferences) PreferencesResponse {
	contentTypes := p.ContentTypes
	if contentTypes == nil {
		contentTypes = []string{}
	}
	return PreferencesResponse{
		ExperienceLevel: string(p.ExperienceLevel),
		RiskTolerance:   string(p.RiskTolerance),
		InvestmentGoals: p.InvestmentGoals,
		FavoriteCryptos: p.FavoriteCryptos,
		ContentTypes:    contentTypes,
	}
}
