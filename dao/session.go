package dao

import (
	"encoding/json"

	"makini-agent-backend/model"
)

func GetSessionsByEmail(email string) ([]model.Session, error) {
	var sessions []model.Session
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func GetSessionByID(email, sessionID string) (*model.Session, error) {
	var session model.Session
	if err := DB.Where("user_email = ? AND session_id = ?", email, sessionID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func DeleteSession(email, sessionID string) error {
	// Remove a sessão
	err := DB.Where("user_email = ? AND session_id = ?", email, sessionID).
		Delete(&model.Session{}).Error
	if err != nil {
		return err
	}

	// Remove as mensagens da sessão
	err = DB.Where("session_id = ?", sessionID).
		Delete(&[]model.Message{}).Error
	if err != nil {
		return err
	}

	return nil
}

func GetMessagesBySessionID(sessionID string) ([]model.Message, error) {
	var messages []model.Message
	if err := DB.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func AppendMessage(sessionID, role, content string, action json.RawMessage) error {
	msg := model.Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Action:    action,
	}
	return DB.Create(&msg).Error
}

func ClearMessages(sessionID string) error {
	return DB.Where("session_id = ?", sessionID).
		Delete(&[]model.Message{}).Error
}

func UpdateSessionTitle(email, sessionID, title string) error {
	err := DB.Model(&model.Session{}).
		Where("user_email = ? AND session_id = ?", email, sessionID).
		Update("title", title).Error
	if err != nil {
		return err
	}
	return nil
}

// SetSessionTitleIfDefault só substitui o título por omissão, para não
// sobrepor um título escolhido pelo utilizador.
func SetSessionTitleIfDefault(sessionID, title string) error {
	return DB.Model(&model.Session{}).
		Where("session_id = ? AND title = ?", sessionID, model.DefaultSessionTitle).
		Update("title", title).Error
}
