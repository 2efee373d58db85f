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

type IncidentService struct {
	incidentRepo   *repo.IncidentRepository
	userRepo       *repo.UserRepository
	publisher      *realtime.Publisher
	mail           *MailService
	logger         zerolog.Logger
	incidentMapper mapper.IncidentMapper
}

func NewIncidentService(publisher *realtime.Publisher) *IncidentService {
	return &IncidentService{
		incidentRepo: repo.NewIncidentRepository(),
		userRepo:     repo.NewUserRepository(),
		publisher:    publisher,
		mail:         NewMailService(),
		logger:       workhub.Logger,
	}
}

// Report stores the incident, pushes an alert to every connected team
// manager, and emails all managers so nobody misses a critical report.
func (slf *IncidentService) Report(reporterID uint, dto request.CreateIncidentDTO) (response.IncidentResponseDTO, error) {
	reporter, err := slf.userRepo.FindByID(reporterID)
	if err != nil {
		return response.IncidentResponseDTO{}, err
	}

	incident := slf.incidentMapper.DtoToEntity(dto, reporterID, reporter.TeamID)
	if err := slf.incidentRepo.Create(&incident); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating incident")
		return response.IncidentResponseDTO{}, err
	}

	if slf.publisher != nil {
		notice := realtime.Notice{
			Kind:     string(hub.KindIncidentAlert),
			SenderID: reporterID,
			TeamID:   reporter.TeamID,
			Content:  fmt.Sprintf("[%s] %s", incident.Severity, incident.Description),
			SentAt:   time.Now(),
		}
		if err := slf.publisher.Publish(notice); err != nil {
			slf.logger.Warn().Err(err).Uint("incidentId", incident.ID).Msg("Incident alert not published")
		}
	}

	managers, err := slf.userRepo.FindByRoleAndTeam(models.RoleManager, reporter.TeamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", reporter.TeamID).Msg("Error resolving managers for incident email")
	} else if err := slf.mail.SendIncidentAlert(incident, reporter, managers); err != nil {
		slf.logger.Warn().Err(err).Uint("incidentId", incident.ID).Msg("Incident email not sent")
	}

	slf.logger.Info().Uint("incidentId", incident.ID).Str("severity", incident.Severity).Msg("Incident reported")
	return slf.incidentMapper.EntityToResponse(incident), nil
}

func (slf *IncidentService) Update(managerID, incidentID uint, dto request.UpdateIncidentDTO) (response.IncidentResponseDTO, error) {
	incident, err := slf.incidentRepo.FindByID(incidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.IncidentResponseDTO{}, errors.New("incident not found")
		}
		return response.IncidentResponseDTO{}, err
	}

	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return response.IncidentResponseDTO{}, err
	}
	if manager.Role != models.RoleManager || manager.TeamID != incident.TeamID {
		return response.IncidentResponseDTO{}, errors.New("incident belongs to another team")
	}

	if dto.Severity != nil {
		incident.Severity = *dto.Severity
	}
	if dto.Resolution != nil {
		incident.Resolution = *dto.Resolution
	}
	if dto.Status != nil {
		incident.Status = *dto.Status
		if (incident.Status == "resolved" || incident.Status == "closed") && incident.ResolvedAt == nil {
			now := time.Now()
			incident.ResolvedAt = &now
		}
	}

	if err := slf.incidentRepo.Update(&incident); err != nil {
		slf.logger.Error().Err(err).Uint("incidentId", incidentID).Msg("Error updating incident")
		return response.IncidentResponseDTO{}, err
	}

	return slf.incidentMapper.EntityToResponse(incident), nil
}

func (slf *IncidentService) ListForTeam(teamID uint, status string) ([]response.IncidentResponseDTO, error) {
	incidents, err := slf.incidentRepo.FindByTeam(teamID, status)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", teamID).Msg("Error listing incidents")
		return nil, err
	}
	return slf.incidentMapper.EntitiesToResponses(incidents), nil
}

func (slf *IncidentService) Stats(teamID uint) (response.IncidentStatsDTO, error) {
	counts, err := slf.incidentRepo.CountByTeamAndSeverity(teamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", teamID).Msg("Error computing incident stats")
		return response.IncidentStatsDTO{}, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	return response.IncidentStatsDTO{Total: total, BySeverity: counts}, nil
}
