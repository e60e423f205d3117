package v1

import (
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/core"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/agent"
	"github.com/kiosk404/pokedex/pkg/errorx"
)

// ChatHandler handles POST /v1/chat.
type ChatHandler struct {
	svc agent.Service
}

// NewChatHandler creates a ChatHandler. svc may be nil when the agent
// failed to initialize; requests then get 503.
func NewChatHandler(svc agent.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Handle(c *gin.Context) {
	if h.svc == nil {
		core.WriteResponse(c, errorx.WithCode(ErrAgentUnavailable, "agent is not initialized"), nil)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind chat request"), nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		core.WriteResponse(c, errorx.WithCode(ErrMessageEmpty, "message is blank"), nil)
		return
	}

	answer := h.svc.ProcessMessage(c.Request.Context(), req.Message, toMessages(req.History))
	core.WriteResponse(c, nil, ChatResponse{Answer: answer})
}

func toMessages(history []HistoryMessage) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		if m.Role == string(schema.Assistant) {
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
			continue
		}
		msgs = append(msgs, schema.UserMessage(m.Content))
	}
	return msgs
}
