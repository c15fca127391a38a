package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"health-chatbot-backend/models"
	"health-chatbot-backend/services"
)

// WebSocketController serves the interactive chat stream used by the web
// frontend. Each connection is an independent conversation: JSON ChatRequest
// in, JSON ChatResponse out.
type WebSocketController struct {
	chatbot  *services.ChatbotService
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewWebSocketController(chatbot *services.ChatbotService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		chatbot: chatbot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are enforced by the CORS layer; the
			// upgrade itself accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleConnection upgrades the request and pumps messages until the client
// disconnects.
func (wc *WebSocketController) HandleConnection(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	wc.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket client connected")

	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wc.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		if req.Message == "" {
			if err := conn.WriteJSON(gin.H{"error": "message is required"}); err != nil {
				return
			}
			continue
		}

		req.Channel = models.ChannelWeb
		response := wc.chatbot.Respond(c.Request.Context(), req)
		if err := conn.WriteJSON(response); err != nil {
			wc.logger.Warn().Err(err).Msg("websocket write error")
			return
		}
	}
}
