package repo

import (
	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	Db *gorm.DB
}

func NewPermissionRepository() *PermissionRepository {
	return &PermissionRepository{Db: workhub.DB}
}

func (slf *PermissionRepository) Create(request *models.PermissionRequest) error {
	return slf.Db.Create(request).Error
}

func (slf *PermissionRepository) Update(request *models.PermissionRequest) error {
	return slf.Db.Save(request).Error
}

func (slf *PermissionRepository) FindByID(id uint) (models.PermissionRequest, error) {
	var request models.PermissionRequest
	err := slf.Db.Preload("Requester").First(&request, id).Error
	return request, err
}

func (slf *PermissionRepository) FindByUser(userID uint) ([]models.PermissionRequest, error) {
	var requests []models.PermissionRequest
	err := slf.Db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// FindPendingForTeam lists requests awaiting a decision, urgent ones first.
func (slf *PermissionRepository) FindPendingForTeam(teamID uint) ([]models.PermissionRequest, error) {
	var requests []models.PermissionRequest
	err := slf.Db.
		Preload("Requester").
		Where("team_id = ? AND status = ?", teamID, "pending").
		Order("is_urgent DESC, created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (slf *PermissionRepository) FindByTeam(teamID uint, status string) ([]models.PermissionRequest, error) {
	query := slf.Db.Preload("Requester").Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.PermissionRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}
