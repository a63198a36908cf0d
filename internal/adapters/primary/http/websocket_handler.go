package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	wsAdapter "github.com/lorrc/helpdesk-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/helpdesk-backend/internal/auth"
)

// WebSocketHandler handles WebSocket connection upgrades
type WebSocketHandler struct {
	hub      *wsAdapter.Hub
	tm       *auth.TokenManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. In development
// mode every origin is accepted.
func NewWebSocketHandler(
	hub *wsAdapter.Hub,
	tm *auth.TokenManager,
	allowedOrigins []string,
	isDevelopment bool,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:    hub,
		tm:     tm,
		logger: logger.With("handler", "websocket"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     makeOriginChecker(allowedOrigins, isDevelopment, handler.logger),
	}

	return handler
}

func makeOriginChecker(allowedOrigins []string, isDevelopment bool, logger *slog.Logger) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if isDevelopment {
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			logger.Warn("failed to parse websocket origin", "origin", origin)
			return false
		}

		for _, allowed := range allowedOrigins {
			if strings.EqualFold(parsedOrigin.Host, allowed) || origin == allowed {
				return true
			}
		}

		logger.Warn("rejected websocket origin", "origin", origin)
		return false
	}
}

// HandleConnect handles GET /ws. Browsers cannot set an Authorization
// header on a websocket upgrade, so the token also rides a query param.
func (h *WebSocketHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		authHeader := r.Header.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	claims, err := h.tm.ValidateToken(tokenString)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := wsAdapter.NewClient(h.hub, conn, claims.UserID, claims.Role, h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
