package repo

import (
	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	Db *gorm.DB
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{Db: workhub.DB}
}

func (slf *MessageRepository) CreateBatch(messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return slf.Db.Create(&messages).Error
}

// FindHistoryForUser returns every message sent by or addressed to the user,
// oldest first. Ties in sent_at break by the persisted id, which is the
// authoritative order.
func (slf *MessageRepository) FindHistoryForUser(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := slf.Db.
		Where("recipient_id = ? OR sender_id = ?", userID, userID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (slf *MessageRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := slf.Db.Model(&models.Message{}).
		Where("recipient_id = ? OR sender_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}
