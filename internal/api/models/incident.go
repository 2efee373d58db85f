package models

import "time"

type Incident struct {
	ID          uint       `gorm:"primaryKey"`
	Description string     `gorm:"type:text;not null"`
	Severity    string     `gorm:"default:low"`  // low, medium, high, critical
	Status      string     `gorm:"default:open"` // open, in_progress, resolved, closed
	Resolution  string     `gorm:"type:text"`
	ReportedBy  uint       `gorm:"index;column:reported_by"`
	TeamID      uint       `gorm:"index;column:team_id"`
	ImageURL    string     `gorm:"column:image_url"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;column:updated_at"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
}

func (Incident) TableName() string {
	return "incidents"
}
