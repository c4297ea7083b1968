package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptoboard/internal/domain"
	"cryptoboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubUserLookup struct {
	users map[int64]*domain.User
}

func (s *stubUserLookup) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestRouter(tokens *token.Service, users UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequireAuth(tokens, users))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ContextUserIDKey)})
	})
	return router
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	tokens := token.New("test-secret-123", 15*time.Minute, 7*24*time.Hour)
	users := &stubUserLookup{users: map[int64]*domain.User{
		42: {ID: 42, Email: "a@b.com", Name: "A"},
	}}
	router := newTestRouter(tokens, users)

	accessToken, err := tokens.GenerateAccessToken(42)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: accessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAuth_NoCookie(t *testing.T) {
	tokens := token.New("test-secret-123", 15*time.Minute, 7*24*time.Hour)
	router := newTestRouter(tokens, &stubUserLookup{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_REQUIRED")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tokens := token.New("test-secret-123", 15*time.Minute, 7*24*time.Hour)
	router := newTestRouter(tokens, &stubUserLookup{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "not-a-jwt"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	// Negative TTL yields a token that is already expired when issued.
	expired := token.New("test-secret-123", -1*time.Minute, 7*24*time.Hour)
	router := newTestRouter(expired, &stubUserLookup{users: map[int64]*domain.User{
		42: {ID: 42},
	}})

	accessToken, err := expired.GenerateAccessToken(42)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: accessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	issuer := token.New("secret-one", 15*time.Minute, 7*24*time.Hour)
	verifier := token.New("secret-two", 15*time.Minute, 7*24*time.Hour)
	router := newTestRouter(verifier, &stubUserLookup{})

	accessToken, err := issuer.GenerateAccessToken(42)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: accessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	tokens := token.New("test-secret-123", 15*time.Minute, 7*24*time.Hour)
	router := newTestRouter(tokens, &stubUserLookup{users: map[int64]*domain.User{}})

	accessToken, err := tokens.GenerateAccessToken(42)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: accessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "USER_NOT_FOUND")
}
