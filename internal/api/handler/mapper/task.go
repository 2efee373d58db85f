package mapper

import (
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
)

type TaskMapper struct{}

func (TaskMapper) DtoToEntity(req request.CreateTaskDTO, assignedBy, teamID uint) models.Task {
	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}
	return models.Task{
		Title:           req.Title,
		Description:     req.Description,
		AssignedTo:      models.UserIDList(req.AssignedTo),
		AssignedBy:      assignedBy,
		TeamID:          teamID,
		Status:          "upcoming",
		Priority:        priority,
		DueDate:         req.DueDate,
		EstimatedHours:  req.EstimatedHours,
		Location:        req.Location,
		EquipmentNeeded: req.EquipmentNeeded,
		IsUrgent:        req.IsUrgent,
	}
}

func (TaskMapper) DtoToUpdate(req request.UpdateTaskDTO, task *models.Task) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedTo != nil {
		task.AssignedTo = models.UserIDList(req.AssignedTo)
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.Location != nil {
		task.Location = *req.Location
	}
	if req.EquipmentNeeded != nil {
		task.EquipmentNeeded = *req.EquipmentNeeded
	}
	if req.IsUrgent != nil {
		task.IsUrgent = *req.IsUrgent
	}
}

func (TaskMapper) EntityToResponse(task models.Task) response.TaskResponseDTO {
	return response.TaskResponseDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		AssignedTo:         []uint(task.AssignedTo),
		AssignedBy:         task.AssignedBy,
		TeamID:             task.TeamID,
		Status:             task.Status,
		Priority:           task.Priority,
		DueDate:            task.DueDate,
		StartedAt:          task.StartedAt,
		CompletedAt:        task.CompletedAt,
		EstimatedHours:     task.EstimatedHours,
		ActualHours:        task.ActualHours,
		Location:           task.Location,
		EquipmentNeeded:    task.EquipmentNeeded,
		IsUrgent:           task.IsUrgent,
		ProgressPercentage: task.ProgressPercentage,
		LastUpdate:         task.LastUpdate,
		CreatedAt:          task.CreatedAt,
	}
}

func (slf TaskMapper) EntitiesToResponses(tasks []models.Task) []response.TaskResponseDTO {
	out := make([]response.TaskResponseDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, slf.EntityToResponse(task))
	}
	return out
}
