package models

import "time"

type Attendance struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"index;not null;column:user_id"`
	CheckInTime  *time.Time `gorm:"column:check_in_time"`
	CheckOutTime *time.Time `gorm:"column:check_out_time"`
	BreakStart   *time.Time `gorm:"column:break_start"`
	BreakEnd     *time.Time `gorm:"column:break_end"`
	Location     string     `gorm:"column:location"`
	Status       string     `gorm:"default:checked_out"` // checked_in, on_break, checked_out, sick_leave, absent
	Notes        string     `gorm:"type:text"`
	WorkHours    string     `gorm:"column:work_hours"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;column:updated_at"`

	User *User `gorm:"foreignKey:UserID"`
}

func (Attendance) TableName() string {
	return "attendance"
}
