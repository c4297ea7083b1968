package auth

import (
	"errors"
	"net/http"
	"strings"

	"cryptoboard/internal/middleware"
	"cryptoboard/internal/pkg/response"
	"cryptoboard/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const (
	// Cookie names are part of the wire contract with the session client.
	AccessCookieName  = "token"
	RefreshCookieName = "refreshToken"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service        *Service
	cookieSecure   bool
	cookieSameSite string
	cookiePath     string
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service, cookieSecure bool, cookieSameSite, cookiePath string) *Handler {
	return &Handler{
		service:        service,
		cookieSecure:   cookieSecure,
		cookieSameSite: cookieSameSite,
		cookiePath:     cookiePath,
	}
}

// Register creates an account and opens a session in the same response.
// @Summary		Register
// @Description	Creates a new account, sets both session cookies and returns the public user.
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}		map[string]interface{}
// @Failure		400	{object}		map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "CONFLICT", "User with this email already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	h.setSessionCookies(c, tokens.AccessToken, tokens.RefreshToken)

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Login authenticates by email+password and rotates the refresh token.
// @Summary		Login
// @Description	Verifies credentials, sets both session cookies and returns the public user.
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}		map[string]interface{}
// @Failure		401	{object}		map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setSessionCookies(c, tokens.AccessToken, tokens.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Refresh exchanges the refresh cookie for a fresh access cookie.
// The refresh cookie itself is left untouched (no rotation).
// @Summary		Refresh access token
// @Description	Issues a new access-token cookie against the refresh token stored in the cookie.
// @Tags		Auth
// @Produce		json
// @Success		200	{object}		map[string]interface{}
// @Failure		401	{object}		map[string]interface{}
// @Router		/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(RefreshCookieName)
	if err != nil || strings.TrimSpace(refreshRaw) == "" {
		response.Error(c, http.StatusUnauthorized, "REFRESH_TOKEN_MISSING", "Refresh token not provided")
		return
	}

	user, accessToken, err := h.service.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshTokenExpired):
			response.Error(c, http.StatusUnauthorized, "REFRESH_TOKEN_EXPIRED", "Refresh token expired")
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh token")
		}
		return
	}

	h.setAccessCookie(c, accessToken)

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Logout revokes the refresh token when recognized and always clears both
// cookies. It never fails the caller.
// @Summary		Logout
// @Description	Best-effort revocation; always returns 200 with cookies cleared.
// @Tags		Auth
// @Produce		json
// @Success		200	{object}		map[string]interface{}
// @Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	refreshRaw, err := c.Cookie(RefreshCookieName)
	if err == nil && strings.TrimSpace(refreshRaw) != "" {
		if logoutErr := h.service.Logout(c.Request.Context(), refreshRaw); logoutErr != nil {
			response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
			return
		}
	}

	h.clearSessionCookies(c)

	response.Message(c, http.StatusOK, "Logged out successfully")
}

// GetMe returns the identity attached by the auth guard.
// @Summary		Current user
// @Tags		Auth
// @Produce		json
// @Success		200	{object}		map[string]interface{}
// @Failure		401	{object}		map[string]interface{}
// @Router		/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (h *Handler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(parseSameSite(h.cookieSameSite))
	c.SetCookie(AccessCookieName, accessToken, int(h.service.tokens.AccessTTL().Seconds()), h.cookiePath, "", h.cookieSecure, true)
	c.SetCookie(RefreshCookieName, refreshToken, int(h.service.tokens.RefreshTTL().Seconds()), h.cookiePath, "", h.cookieSecure, true)
}

func (h *Handler) setAccessCookie(c *gin.Context, accessToken string) {
	c.SetSameSite(parseSameSite(h.cookieSameSite))
	c.SetCookie(AccessCookieName, accessToken, int(h.service.tokens.AccessTTL().Seconds()), h.cookiePath, "", h.cookieSecure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookieSameSite))
	c.SetCookie(AccessCookieName, "", -1, h.cookiePath, "", h.cookieSecure, true)
	c.SetCookie(RefreshCookieName, "", -1, h.cookiePath, "", h.cookieSecure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteStrictMode
	}
}
