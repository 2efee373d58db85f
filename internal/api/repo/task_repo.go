package repo

import (
	"fmt"

	"workhub"
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	Db *gorm.DB
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{Db: workhub.DB}
}

func (slf *TaskRepository) Create(task *models.Task) error {
	return slf.Db.Create(task).Error
}

func (slf *TaskRepository) FindByID(id uint) (models.Task, error) {
	var task models.Task
	err := slf.Db.First(&task, id).Error
	return task, err
}

func (slf *TaskRepository) Update(task *models.Task) error {
	return slf.Db.Save(task).Error
}

func (slf *TaskRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Task{}, id).Error
}

// TaskFilter narrows FindByTeam. Zero values mean "no filter".
type TaskFilter struct {
	Status     string
	Priority   string
	AssignedTo uint
}

func (slf *TaskRepository) FindByTeam(teamID uint, filter TaskFilter) ([]models.Task, error) {
	query := slf.Db.Where("team_id = ?", teamID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != 0 {
		// jsonb containment against a single-element array, e.g. [42]
		query = query.Where("assigned_to @> ?", fmt.Sprintf("[%d]", filter.AssignedTo))
	}

	var tasks []models.Task
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}
