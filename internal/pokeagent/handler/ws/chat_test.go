package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoService struct {
	mu        sync.Mutex
	histories [][]*schema.Message
}

func (s *echoService) ProcessMessage(_ context.Context, input string, history []*schema.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = append(s.histories, append([]*schema.Message(nil), history...))
	return "resposta: " + input
}

func dial(t *testing.T, h *ChatHandler) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", h.Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, text string) string {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(text)))
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, kind)
	return string(data)
}

func TestTurnsShareConnectionHistory(t *testing.T) {
	svc := &echoService{}
	conn := dial(t, NewChatHandler(svc))

	assert.Equal(t, "resposta: Olá", roundTrip(t, conn, "Olá"))
	assert.Equal(t, "resposta: Quem é Pikachu?", roundTrip(t, conn, "Quem é Pikachu?"))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.histories, 2)
	assert.Empty(t, svc.histories[0])
	second := svc.histories[1]
	require.Len(t, second, 2)
	assert.Equal(t, schema.User, second[0].Role)
	assert.Equal(t, "Olá", second[0].Content)
	assert.Equal(t, schema.Assistant, second[1].Role)
	assert.Equal(t, "resposta: Olá", second[1].Content)
}

func TestConnectionsDoNotShareHistory(t *testing.T) {
	svc := &echoService{}
	h := NewChatHandler(svc)

	first := dial(t, h)
	roundTrip(t, first, "um")
	second := dial(t, h)
	roundTrip(t, second, "dois")

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.histories, 2)
	assert.Empty(t, svc.histories[1])
}

func TestAgentUnavailable(t *testing.T) {
	conn := dial(t, NewChatHandler(nil))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, AgentUnavailableMessage, string(data))

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
