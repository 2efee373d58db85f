package mapper

import (
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
)

type PermissionMapper struct{}

func (PermissionMapper) DtoToEntity(req request.CreatePermissionDTO, userID, managerID, teamID uint) models.PermissionRequest {
	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}
	return models.PermissionRequest{
		UserID:         userID,
		ManagerID:      managerID,
		TeamID:         teamID,
		RequestType:    req.RequestType,
		Title:          req.Title,
		Description:    req.Description,
		RequestedDate:  req.RequestedDate,
		RequestedHours: req.RequestedHours,
		Status:         "pending",
		Priority:       priority,
		IsUrgent:       req.IsUrgent,
	}
}

func (PermissionMapper) EntityToResponse(entity models.PermissionRequest) response.PermissionResponseDTO {
	dto := response.PermissionResponseDTO{
		ID:              entity.ID,
		UserID:          entity.UserID,
		RequestType:     entity.RequestType,
		Title:           entity.Title,
		Description:     entity.Description,
		RequestedDate:   entity.RequestedDate,
		RequestedHours:  entity.RequestedHours,
		Status:          entity.Status,
		ManagerResponse: entity.ManagerResponse,
		ApprovedBy:      entity.ApprovedBy,
		ApprovedAt:      entity.ApprovedAt,
		Priority:        entity.Priority,
		IsUrgent:        entity.IsUrgent,
		CreatedAt:       entity.CreatedAt,
	}
	if entity.Requester != nil {
		dto.RequesterName = entity.Requester.FullName
	}
	return dto
}

func (slf PermissionMapper) EntitiesToResponses(entities []models.PermissionRequest) []response.PermissionResponseDTO {
	out := make([]response.PermissionResponseDTO, 0, len(entities))
	for _, entity := range entities {
		out = append(out, slf.EntityToResponse(entity))
	}
	return out
}
