package repo

import (
	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type IncidentRepository struct {
	Db *gorm.DB
}

func NewIncidentRepository() *IncidentRepository {
	return &IncidentRepository{Db: workhub.DB}
}

func (slf *IncidentRepository) Create(incident *models.Incident) error {
	return slf.Db.Create(incident).Error
}

func (slf *IncidentRepository) FindByID(id uint) (models.Incident, error) {
	var incident models.Incident
	err := slf.Db.First(&incident, id).Error
	return incident, err
}

func (slf *IncidentRepository) Update(incident *models.Incident) error {
	return slf.Db.Save(incident).Error
}

func (slf *IncidentRepository) FindByTeam(teamID uint, status string) ([]models.Incident, error) {
	query := slf.Db.Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var incidents []models.Incident
	err := query.Order("created_at DESC").Find(&incidents).Error
	return incidents, err
}

func (slf *IncidentRepository) CountByTeamAndSeverity(teamID uint) (map[string]int64, error) {
	type row struct {
		Severity string
		Count    int64
	}
	var rows []row
	err := slf.Db.Model(&models.Incident{}).
		Select("severity, count(*) as count").
		Where("team_id = ?", teamID).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Severity] = r.Count
	}
	return counts, nil
}
