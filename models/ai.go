package models

// ChatRequest is the payload coming from the frontend into /api/ai/chat.
type ChatRequest struct {
	ClientID string `json:"clientId"`
	Text     string `json:"text" binding:"required"`
}

// ChatResponse is what the assistant handler returns to the frontend.
type ChatResponse struct {
	ResponseText string `json:"response"`
}

// ChatContext is the rolling conversation state kept in Redis between turns.
type ChatContext struct {
	History []ChatTurn `json:"history"`
}

// ChatTurn is one exchange in the conversation.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}
