package mapper

import (
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
)

type IncidentMapper struct{}

func (IncidentMapper) DtoToEntity(req request.CreateIncidentDTO, reportedBy, teamID uint) models.Incident {
	severity := req.Severity
	if severity == "" {
		severity = "low"
	}
	return models.Incident{
		Description: req.Description,
		Severity:    severity,
		Status:      "open",
		ReportedBy:  reportedBy,
		TeamID:      teamID,
		ImageURL:    req.ImageURL,
	}
}

func (IncidentMapper) EntityToResponse(incident models.Incident) response.IncidentResponseDTO {
	return response.IncidentResponseDTO{
		ID:          incident.ID,
		Description: incident.Description,
		Severity:    incident.Severity,
		Status:      incident.Status,
		Resolution:  incident.Resolution,
		ReportedBy:  incident.ReportedBy,
		TeamID:      incident.TeamID,
		ImageURL:    incident.ImageURL,
		CreatedAt:   incident.CreatedAt,
		ResolvedAt:  incident.ResolvedAt,
	}
}

func (slf IncidentMapper) EntitiesToResponses(incidents []models.Incident) []response.IncidentResponseDTO {
	out := make([]response.IncidentResponseDTO, 0, len(incidents))
	for _, incident := range incidents {
		out = append(out, slf.EntityToResponse(incident))
	}
	return out
}
