package repo

import (
	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type TeamRepository struct {
	Db *gorm.DB
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{Db: workhub.DB}
}

func (slf *TeamRepository) Create(team *models.Team) error {
	return slf.Db.Create(team).Error
}

func (slf *TeamRepository) FindByID(id uint) (models.Team, error) {
	var team models.Team
	err := slf.Db.First(&team, id).Error
	return team, err
}

func (slf *TeamRepository) FindByIDWithMembers(id uint) (models.Team, error) {
	var team models.Team
	err := slf.Db.Preload("Members").First(&team, id).Error
	return team, err
}

func (slf *TeamRepository) Update(team *models.Team) error {
	return slf.Db.Save(team).Error
}
