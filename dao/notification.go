package dao

import (
	"encoding/json"

	"makini-agent-backend/model"
)

func CreateNotification(recipientID, tipo string, payload json.RawMessage) error {
	notification := model.Notification{
		RecipientID: recipientID,
		Tipo:        tipo,
		Payload:     payload,
	}
	return DB.Create(&notification).Error
}

func GetNotificationsByRecipient(recipientID string) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := DB.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func MarkNotificationRead(recipientID string, id uint) error {
	return DB.Model(&model.Notification{}).
		Where("recipient_id = ? AND id = ?", recipientID, id).
		Update("lida", true).Error
}
