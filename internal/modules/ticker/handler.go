package ticker

import (
	"log"
	"net/http"

	"cryptoboard/internal/pkg/response"
	"cryptoboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware on the HTTP side; the
	// upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub    *Hub
	tokens *token.Service
}

func NewHandler(hub *Hub, tokens *token.Service) *Handler {
	return &Handler{hub: hub, tokens: tokens}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/ws/ticker", h.HandleWebSocket)
}

// HandleWebSocket upgrades the connection for an authenticated client.
// Auth comes from the access-token cookie; a ?token= query parameter is
// accepted as a fallback for clients that cannot send cookies.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	raw, err := c.Cookie("token")
	if err != nil || raw == "" {
		raw = c.Query("token")
	}
	if raw == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	claims, err := h.tokens.ValidateAccessToken(raw)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ticker: websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(claims.UserID, conn)

	// Reader loop: the ticker is one-way, but reading is required to
	// notice the peer closing the connection.
	go func(userID int64, conn *websocket.Conn) {
		defer h.hub.Unregister(userID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}(claims.UserID, conn)
}
