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

type PermissionService struct {
	permissionRepo   *repo.PermissionRepository
	userRepo         *repo.UserRepository
	publisher        *realtime.Publisher
	logger           zerolog.Logger
	permissionMapper mapper.PermissionMapper
}

func NewPermissionService(publisher *realtime.Publisher) *PermissionService {
	return &PermissionService{
		permissionRepo: repo.NewPermissionRepository(),
		userRepo:       repo.NewUserRepository(),
		publisher:      publisher,
		logger:         workhub.Logger,
	}
}

// Submit files a request and pings the team managers so urgent ones are seen
// without polling.
func (slf *PermissionService) Submit(userID uint, dto request.CreatePermissionDTO) (response.PermissionResponseDTO, error) {
	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return response.PermissionResponseDTO{}, err
	}

	entity := slf.permissionMapper.DtoToEntity(dto, userID, 0, user.TeamID)
	if err := slf.permissionRepo.Create(&entity); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error creating permission request")
		return response.PermissionResponseDTO{}, err
	}

	slf.publish(realtime.Notice{
		Kind:     string(hub.KindSystem),
		SenderID: userID,
		TeamID:   user.TeamID,
		Targets:  slf.managerIDs(user.TeamID),
		Content:  fmt.Sprintf("%s filed a %s request: %s", user.FullName, entity.RequestType, entity.Title),
		SentAt:   time.Now(),
	})

	slf.logger.Info().Uint("requestId", entity.ID).Uint("userId", userID).Msg("Permission request submitted")
	return slf.permissionMapper.EntityToResponse(entity), nil
}

// Decide records the manager's verdict and notifies the requester.
func (slf *PermissionService) Decide(managerID, requestID uint, dto request.DecidePermissionDTO) (response.PermissionResponseDTO, error) {
	entity, err := slf.permissionRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.PermissionResponseDTO{}, errors.New("permission request not found")
		}
		return response.PermissionResponseDTO{}, err
	}

	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return response.PermissionResponseDTO{}, err
	}
	if manager.Role != models.RoleManager || manager.TeamID != entity.TeamID {
		return response.PermissionResponseDTO{}, errors.New("request belongs to another team")
	}

	entity.Status = dto.Status
	entity.ManagerResponse = dto.ManagerResponse
	entity.ManagerID = managerID
	if dto.Status == "approved" || dto.Status == "rejected" {
		now := time.Now()
		entity.ApprovedBy = managerID
		entity.ApprovedAt = &now
	}

	if err := slf.permissionRepo.Update(&entity); err != nil {
		slf.logger.Error().Err(err).Uint("requestId", requestID).Msg("Error updating permission request")
		return response.PermissionResponseDTO{}, err
	}

	slf.publish(realtime.Notice{
		Kind:     string(hub.KindSystem),
		SenderID: managerID,
		TeamID:   entity.TeamID,
		Targets:  []uint{entity.UserID},
		Content:  fmt.Sprintf("Your request %q was %s", entity.Title, entity.Status),
		SentAt:   time.Now(),
	})

	slf.logger.Info().Uint("requestId", requestID).Str("status", entity.Status).Msg("Permission request decided")
	return slf.permissionMapper.EntityToResponse(entity), nil
}

func (slf *PermissionService) ListForUser(userID uint) ([]response.PermissionResponseDTO, error) {
	entities, err := slf.permissionRepo.FindByUser(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error listing permission requests")
		return nil, err
	}
	return slf.permissionMapper.EntitiesToResponses(entities), nil
}

func (slf *PermissionService) ListForTeam(managerID uint, status string) ([]response.PermissionResponseDTO, error) {
	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != models.RoleManager {
		return nil, errors.New("only managers can review permission requests")
	}

	var entities []models.PermissionRequest
	if status == "pending" {
		entities, err = slf.permissionRepo.FindPendingForTeam(manager.TeamID)
	} else {
		entities, err = slf.permissionRepo.FindByTeam(manager.TeamID, status)
	}
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", manager.TeamID).Msg("Error listing team permission requests")
		return nil, err
	}
	return slf.permissionMapper.EntitiesToResponses(entities), nil
}

func (slf *PermissionService) managerIDs(teamID uint) []uint {
	managers, err := slf.userRepo.FindByRoleAndTeam(models.RoleManager, teamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", teamID).Msg("Error resolving team managers")
		return nil
	}
	ids := make([]uint, 0, len(managers))
	for _, manager := range managers {
		ids = append(ids, manager.ID)
	}
	return ids
}

func (slf *PermissionService) publish(notice realtime.Notice) {
	if slf.publisher == nil || len(notice.Targets) == 0 {
		return
	}
	if err := slf.publisher.Publish(notice); err != nil {
		slf.logger.Warn().Err(err).Str("kind", notice.Kind).Msg("Permission notice not published")
	}
}
