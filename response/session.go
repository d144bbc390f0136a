package response

import (
	"encoding/json"
	"time"
)

type Response struct {
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
}

type GetSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type MessageResponse struct {
	CreatedAt time.Time       `json:"created_at"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Action    json.RawMessage `json:"action,omitempty"`
}

type GetSessionMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}
