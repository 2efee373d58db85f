package repo

import (
	"time"

	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	Db *gorm.DB
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{Db: workhub.DB}
}

func (slf *AttendanceRepository) Create(record *models.Attendance) error {
	return slf.Db.Create(record).Error
}

func (slf *AttendanceRepository) Update(record *models.Attendance) error {
	return slf.Db.Save(record).Error
}

// FindTodayForUser returns the user's attendance row for the current day.
func (slf *AttendanceRepository) FindTodayForUser(userID uint) (models.Attendance, error) {
	dayStart := time.Now().Truncate(24 * time.Hour)
	var record models.Attendance
	err := slf.Db.
		Where("user_id = ? AND created_at >= ?", userID, dayStart).
		Order("created_at DESC").
		First(&record).Error
	return record, err
}

func (slf *AttendanceRepository) FindForUser(userID uint, from, to time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := slf.Db.
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, from, to).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (slf *AttendanceRepository) FindForTeam(teamID uint, from, to time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := slf.Db.
		Joins("JOIN users ON users.id = attendance.user_id").
		Where("users.team_id = ? AND attendance.created_at BETWEEN ? AND ?", teamID, from, to).
		Order("attendance.created_at DESC").
		Find(&records).Error
	return records, err
}
