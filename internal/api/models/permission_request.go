package models

import "time"

type PermissionRequest struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null;column:user_id"` // worker requesting
	ManagerID uint `gorm:"column:manager_id"`             // assigned manager
	TeamID    uint `gorm:"index;column:team_id"`

	RequestType    string     `gorm:"not null;column:request_type"` // overtime, vacation, sick_leave, special_access, early_leave
	Title          string     `gorm:"not null"`
	Description    string     `gorm:"type:text;not null"`
	RequestedDate  *time.Time `gorm:"column:requested_date"`
	RequestedHours string     `gorm:"column:requested_hours"`

	Status          string     `gorm:"default:pending"` // pending, approved, rejected, under_review
	ManagerResponse string     `gorm:"type:text;column:manager_response"`
	ApprovedBy      uint       `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`

	Priority  string    `gorm:"default:normal"` // urgent, high, normal, low
	IsUrgent  bool      `gorm:"default:false;column:is_urgent"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`

	Requester *User `gorm:"foreignKey:UserID"`
}

func (PermissionRequest) TableName() string {
	return "permission_requests"
}
