package model

import (
	"encoding/json"
	"time"
)

const DefaultSessionTitle = "Nova conversa"

type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserEmail string    `gorm:"not null;index" json:"user_email"`
	SessionID string    `gorm:"not null" json:"session_id"`
	Title     string    `json:"title"`
}

func (Session) TableName() string {
	return "chat_session"
}

// Message carrega o índice composto (session_id, created_at) usado para
// reconstruir a janela de contexto por ordem de inserção.
type Message struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `gorm:"index:idx_session_created" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	SessionID string          `gorm:"not null;index:idx_session_created" json:"session_id"`
	Role      string          `gorm:"not null" json:"role"`
	Content   string          `gorm:"type:text" json:"content"`
	Action    json.RawMessage `gorm:"type:json" json:"action"`
}

func (Message) TableName() string {
	return "chat_message"
}
