// Package ws serves the chat over a persistent WebSocket connection.
package ws

import (
	"errors"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kiosk404/pokedex/internal/pkg/middleware"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/agent"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// AgentUnavailableMessage is sent when the server started without an agent.
const AgentUnavailableMessage = "Erro: Agente não inicializado corretamente no servidor."

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ChatHandler handles GET /ws. Each text frame is one turn; the reply is
// the full answer in one text frame.
type ChatHandler struct {
	svc agent.Service
}

// NewChatHandler creates a ChatHandler. svc may be nil when the agent
// failed to initialize.
func NewChatHandler(svc agent.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "[WS] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Every connection is its own session.
	sessionID := logger.NewCorrelationID()
	ctx := logger.WithCorrelationID(c.Request.Context(), sessionID)
	logger.CtxInfo(ctx, "[WS] connection accepted from %s (rid=%s)", c.ClientIP(), c.GetString(middleware.XRequestIDKey))

	if h.svc == nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(AgentUnavailableMessage))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "agent unavailable"))
		return
	}

	var history []*schema.Message
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				logger.CtxInfo(ctx, "[WS] client disconnected (%d)", closeErr.Code)
			} else {
				logger.CtxError(ctx, "[WS] read failed: %v", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			logger.CtxWarn(ctx, "[WS] ignoring non-text frame (type=%d)", kind)
			continue
		}

		input := string(data)
		answer := h.svc.ProcessMessage(ctx, input, history)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(answer)); err != nil {
			logger.CtxError(ctx, "[WS] write failed: %v", err)
			return
		}
		history = append(history, schema.UserMessage(input), schema.AssistantMessage(answer, nil))
	}
}
