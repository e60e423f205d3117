package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiosk404/pokedex/pkg/utils/json"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrSessionClosed is returned once the server has closed the WebSocket.
var ErrSessionClosed = errors.New("chat session closed by server")

// Session is a WebSocket conversation with pokeagent. The server keeps the
// history for the lifetime of the connection.
type Session struct {
	conn *websocket.Conn
	url  string
}

// wsURL maps an http(s) base address to the agent's WebSocket endpoint.
func wsURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		baseURL = "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		baseURL = "ws://" + strings.TrimPrefix(baseURL, "http://")
	}
	return strings.TrimRight(baseURL, "/") + "/ws"
}

// Dial opens a conversation with the agent at baseURL.
func Dial(ctx context.Context, baseURL string) (*Session, error) {
	u := wsURL(baseURL)
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", u, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	return &Session{conn: conn, url: u}, nil
}

// URL is the WebSocket endpoint of the session.
func (s *Session) URL() string { return s.url }

// Ask sends one message and waits for the answer. The context deadline, if
// any, bounds the wait.
func (s *Session) Ask(ctx context.Context, message string) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return "", err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		// The server may have pushed a final message before closing.
		if msg, rerr := s.read(time.Now().Add(time.Second)); rerr == nil {
			return msg, nil
		}
		return "", s.mapErr(err)
	}
	return s.read(deadline)
}

func (s *Session) read(deadline time.Time) (string, error) {
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}
	for {
		typ, data, err := s.conn.ReadMessage()
		if err != nil {
			return "", s.mapErr(err)
		}
		if typ == websocket.TextMessage {
			return string(data), nil
		}
	}
}

func (s *Session) mapErr(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseInternalServerErr) {
		return ErrSessionClosed
	}
	return err
}

// Close says goodbye to the server and releases the connection.
func (s *Session) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}

// HTTPClient calls the stateless POST /v1/chat endpoint.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ask sends message with the caller-held history and returns the answer.
func (c *HTTPClient) Ask(ctx context.Context, message string, history []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message, History: history})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil && e.Message != "" {
			return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Message)
		}
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return out.Answer, nil
}
