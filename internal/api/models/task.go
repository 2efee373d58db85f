package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserIDList is a jsonb-backed list of user ids.
type UserIDList []uint

// Scan implements sql.Scanner
func (l *UserIDList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan type %T into UserIDList", value)
	}
}

// Value implements driver.Valuer
func (l UserIDList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

type Task struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`

	AssignedTo UserIDList `gorm:"type:jsonb;column:assigned_to"` // worker ids
	AssignedBy uint       `gorm:"column:assigned_by"`            // manager who assigned
	TeamID     uint       `gorm:"index;column:team_id"`

	Status   string `gorm:"default:upcoming"` // upcoming, ongoing, completed, on_hold, cancelled
	Priority string `gorm:"default:normal"`   // urgent, high, normal, low

	DueDate        *time.Time `gorm:"column:due_date"`
	StartedAt      *time.Time `gorm:"column:started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
	EstimatedHours *float64   `gorm:"column:estimated_hours"`
	ActualHours    *float64   `gorm:"column:actual_hours"`

	Location        string `gorm:"column:location"`
	EquipmentNeeded string `gorm:"type:text;column:equipment_needed"`
	IsUrgent        bool   `gorm:"default:false;column:is_urgent"`

	ProgressPercentage int    `gorm:"default:0;column:progress_percentage"` // 0-100
	LastUpdate         string `gorm:"type:text;column:last_update"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
