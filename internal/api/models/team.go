package models

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;not null"`
	PlanType  string    `gorm:"default:Free;column:plan_type"` // Free, Pro, Enterprise
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`

	Members []User `gorm:"foreignKey:TeamID"`
}

func (Team) TableName() string {
	return "teams"
}
