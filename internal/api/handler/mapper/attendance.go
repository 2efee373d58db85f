package mapper

import (
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
)

type AttendanceMapper struct{}

func (AttendanceMapper) EntityToResponse(record models.Attendance) response.AttendanceResponseDTO {
	return response.AttendanceResponseDTO{
		ID:           record.ID,
		UserID:       record.UserID,
		CheckInTime:  record.CheckInTime,
		CheckOutTime: record.CheckOutTime,
		BreakStart:   record.BreakStart,
		BreakEnd:     record.BreakEnd,
		Location:     record.Location,
		Status:       record.Status,
		Notes:        record.Notes,
		WorkHours:    record.WorkHours,
	}
}

func (slf AttendanceMapper) EntitiesToResponses(records []models.Attendance) []response.AttendanceResponseDTO {
	out := make([]response.AttendanceResponseDTO, 0, len(records))
	for _, record := range records {
		out = append(out, slf.EntityToResponse(record))
	}
	return out
}
