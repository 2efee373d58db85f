package service

import (
	"errors"
	"fmt"
	"time"

	"workhub"
	"workhub/internal/api/handler/mapper"
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/internal/hub"
	"workhub/internal/realtime"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo   *repo.TaskRepository
	userRepo   *repo.UserRepository
	publisher  *realtime.Publisher
	logger     zerolog.Logger
	taskMapper mapper.TaskMapper
}

func NewTaskService(publisher *realtime.Publisher) *TaskService {
	return &TaskService{
		taskRepo:  repo.NewTaskRepository(),
		userRepo:  repo.NewUserRepository(),
		publisher: publisher,
		logger:    workhub.Logger,
	}
}

// Create stores the task and notifies every assignee through the hub.
func (slf *TaskService) Create(managerID uint, dto request.CreateTaskDTO) (response.TaskResponseDTO, error) {
	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return response.TaskResponseDTO{}, err
	}
	if manager.Role != models.RoleManager {
		return response.TaskResponseDTO{}, errors.New("only managers can assign tasks")
	}

	task := slf.taskMapper.DtoToEntity(dto, managerID, manager.TeamID)
	if err := slf.taskRepo.Create(&task); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating task")
		return response.TaskResponseDTO{}, err
	}

	slf.notifyAssignees(task, manager, fmt.Sprintf("New task assigned: %s", task.Title))

	slf.logger.Info().Uint("taskId", task.ID).Uint("managerId", managerID).Msg("Task created")
	return slf.taskMapper.EntityToResponse(task), nil
}

func (slf *TaskService) Update(managerID, taskID uint, dto request.UpdateTaskDTO) (response.TaskResponseDTO, error) {
	task, err := slf.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.TaskResponseDTO{}, errors.New("task not found")
		}
		return response.TaskResponseDTO{}, err
	}

	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return response.TaskResponseDTO{}, err
	}
	if manager.TeamID != task.TeamID || manager.Role != models.RoleManager {
		return response.TaskResponseDTO{}, errors.New("task belongs to another team")
	}

	slf.taskMapper.DtoToUpdate(dto, &task)
	if err := slf.taskRepo.Update(&task); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error updating task")
		return response.TaskResponseDTO{}, err
	}

	slf.notifyAssignees(task, manager, fmt.Sprintf("Task updated: %s", task.Title))
	return slf.taskMapper.EntityToResponse(task), nil
}

// UpdateStatus is the worker-side progress report. Status transitions stamp
// started_at and completed_at the first time they are reached.
func (slf *TaskService) UpdateStatus(userID, taskID uint, dto request.TaskStatusDTO) (response.TaskResponseDTO, error) {
	task, err := slf.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.TaskResponseDTO{}, errors.New("task not found")
		}
		return response.TaskResponseDTO{}, err
	}

	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return response.TaskResponseDTO{}, err
	}
	if !slf.canTouch(user, task) {
		return response.TaskResponseDTO{}, errors.New("task is not assigned to you")
	}

	now := time.Now()
	task.Status = dto.Status
	switch dto.Status {
	case "ongoing":
		if task.StartedAt == nil {
			task.StartedAt = &now
		}
	case "completed":
		if task.CompletedAt == nil {
			task.CompletedAt = &now
		}
		task.ProgressPercentage = 100
	}
	if dto.ProgressPercentage != nil {
		task.ProgressPercentage = *dto.ProgressPercentage
	}
	if dto.ActualHours != nil {
		task.ActualHours = dto.ActualHours
	}
	if dto.LastUpdate != "" {
		task.LastUpdate = dto.LastUpdate
	}

	if err := slf.taskRepo.Update(&task); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error updating task status")
		return response.TaskResponseDTO{}, err
	}

	// The assigning manager gets the status change pushed to their dashboard.
	slf.publish(realtime.Notice{
		Kind:     string(hub.KindTaskNotice),
		SenderID: userID,
		TeamID:   task.TeamID,
		Targets:  []uint{task.AssignedBy},
		Content:  fmt.Sprintf("Task %q is now %s (%d%%)", task.Title, task.Status, task.ProgressPercentage),
		SentAt:   now,
	})

	return slf.taskMapper.EntityToResponse(task), nil
}

func (slf *TaskService) GetByID(userID, taskID uint) (response.TaskResponseDTO, error) {
	task, err := slf.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.TaskResponseDTO{}, errors.New("task not found")
		}
		return response.TaskResponseDTO{}, err
	}

	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return response.TaskResponseDTO{}, err
	}
	if user.TeamID != task.TeamID {
		return response.TaskResponseDTO{}, errors.New("task belongs to another team")
	}

	return slf.taskMapper.EntityToResponse(task), nil
}

func (slf *TaskService) ListForTeam(teamID uint, filter repo.TaskFilter) ([]response.TaskResponseDTO, error) {
	tasks, err := slf.taskRepo.FindByTeam(teamID, filter)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", teamID).Msg("Error listing tasks")
		return nil, err
	}
	return slf.taskMapper.EntitiesToResponses(tasks), nil
}

func (slf *TaskService) Delete(managerID, taskID uint) error {
	task, err := slf.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("task not found")
		}
		return err
	}

	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return err
	}
	if manager.TeamID != task.TeamID || manager.Role != models.RoleManager {
		return errors.New("task belongs to another team")
	}

	if err := slf.taskRepo.Delete(taskID); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error deleting task")
		return err
	}

	slf.notifyAssignees(task, manager, fmt.Sprintf("Task cancelled: %s", task.Title))
	return nil
}

func (slf *TaskService) canTouch(user models.User, task models.Task) bool {
	if user.Role == models.RoleManager && user.TeamID == task.TeamID {
		return true
	}
	for _, id := range task.AssignedTo {
		if id == user.ID {
			return true
		}
	}
	return false
}

func (slf *TaskService) notifyAssignees(task models.Task, manager models.User, content string) {
	slf.publish(realtime.Notice{
		Kind:     string(hub.KindTaskNotice),
		SenderID: manager.ID,
		TeamID:   task.TeamID,
		Targets:  []uint(task.AssignedTo),
		Content:  content,
		SentAt:   time.Now(),
	})
}

func (slf *TaskService) publish(notice realtime.Notice) {
	if slf.publisher == nil {
		return
	}
	if err := slf.publisher.Publish(notice); err != nil {
		slf.logger.Warn().Err(err).Str("kind", notice.Kind).Msg("Task notice not published")
	}
}
