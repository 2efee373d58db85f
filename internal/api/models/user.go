package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleManager = "Manager"
	RoleWorker  = "Worker"
)

type User struct {
	ID           uint           `gorm:"primaryKey"`
	TeamID       uint           `gorm:"index;column:team_id"`
	Email        string         `gorm:"uniqueIndex;not null"`
	Password     string         `gorm:"not null;column:password"`
	FullName     string         `gorm:"column:full_name"`
	Role         string         `gorm:"not null;column:role"` // Manager, Worker
	ForceReset   bool           `gorm:"default:false;column:force_reset"`
	Actif        bool           `gorm:"default:true;column:actif"`
	RefreshToken string         `gorm:"type:text;column:refresh_token"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index;column:deleted_at"`

	Team *Team `gorm:"foreignKey:TeamID"`
}

func (User) TableName() string {
	return "users"
}
