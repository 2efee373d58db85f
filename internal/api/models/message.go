package models

import "time"

// Message is a durably stored hub message. One row per recipient; broadcast
// kinds (incident alerts) fan out to one row per team manager so every
// manager can retrieve the alert on next connect.
type Message struct {
	ID          uint      `gorm:"primaryKey"`
	Kind        string    `gorm:"index;not null;column:kind"`
	SenderID    uint      `gorm:"index;column:sender_id"`
	RecipientID uint      `gorm:"index;column:recipient_id"`
	TeamID      uint      `gorm:"index;column:team_id"`
	Content     string    `gorm:"type:text;not null"`
	SentAt      time.Time `gorm:"index;column:sent_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at"`
}

func (Message) TableName() string {
	return "messages"
}
