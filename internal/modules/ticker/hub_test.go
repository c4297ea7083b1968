package ticker

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cryptoboard/internal/modules/dashboard"
	"cryptoboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTickerServer(t *testing.T) (*httptest.Server, *Hub, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.New("test-secret", 15*time.Minute, 7*24*time.Hour)
	hub := NewHub()
	handler := NewHandler(hub, tokens)

	router := gin.New()
	handler.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)
	return srv, hub, tokens
}

func dialTicker(t *testing.T, srv *httptest.Server, accessToken string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ticker"

	header := http.Header{}
	header.Set("Cookie", "token="+accessToken)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocket_AuthenticatedBroadcast(t *testing.T) {
	srv, hub, tokens := newTickerServer(t)

	accessToken, err := tokens.GenerateAccessToken(42)
	require.NoError(t, err)

	conn := dialTicker(t, srv, accessToken)

	// Registration happens in the upgrade handler before Dial returns.
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Broadcast(Snapshot{
		Type:    "ticker",
		At:      time.Now().UTC(),
		Cryptos: []dashboard.Crypto{{Symbol: "BTC", Price: 50000}},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Snapshot
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "ticker", got.Type)
	require.Len(t, got.Cryptos, 1)
	assert.Equal(t, "BTC", got.Cryptos[0].Symbol)
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	srv, hub, _ := newTickerServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ticker"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, hub.OnlineCount())
}

func TestWebSocket_RejectsInvalidToken(t *testing.T) {
	srv, hub, _ := newTickerServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ticker?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, hub.OnlineCount())
}

func TestHub_SecondConnectionReplacesFirst(t *testing.T) {
	srv, hub, tokens := newTickerServer(t)

	accessToken, err := tokens.GenerateAccessToken(42)
	require.NoError(t, err)

	first := dialTicker(t, srv, accessToken)
	_ = dialTicker(t, srv, accessToken)

	assert.Equal(t, 1, hub.OnlineCount())

	// The replaced connection is closed server-side; reads fail promptly.
	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = first.ReadMessage()
	assert.Error(t, err)
}
