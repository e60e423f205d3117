package v1

// ChatRequest is the body of POST /v1/chat. History is request-scoped and
// never persisted.
type ChatRequest struct {
	Message string           `json:"message" binding:"required"`
	History []HistoryMessage `json:"history" binding:"omitempty,dive"`
}

type HistoryMessage struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
