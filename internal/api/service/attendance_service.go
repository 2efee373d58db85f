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

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AttendanceService struct {
	attendanceRepo   *repo.AttendanceRepository
	userRepo         *repo.UserRepository
	logger           zerolog.Logger
	attendanceMapper mapper.AttendanceMapper
}

func NewAttendanceService() *AttendanceService {
	return &AttendanceService{
		attendanceRepo: repo.NewAttendanceRepository(),
		userRepo:       repo.NewUserRepository(),
		logger:         workhub.Logger,
	}
}

// CheckIn opens today's attendance record. A second check-in on the same day
// is rejected instead of silently opening a duplicate row.
func (slf *AttendanceService) CheckIn(userID uint, dto request.CheckInDTO) (response.AttendanceResponseDTO, error) {
	existing, err := slf.attendanceRepo.FindTodayForUser(userID)
	if err == nil && existing.Status != "checked_out" {
		return response.AttendanceResponseDTO{}, errors.New("already checked in")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.AttendanceResponseDTO{}, err
	}

	now := time.Now()
	record := models.Attendance{
		UserID:      userID,
		CheckInTime: &now,
		Location:    dto.Location,
		Notes:       dto.Notes,
		Status:      "checked_in",
	}
	if err := slf.attendanceRepo.Create(&record); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error creating attendance record")
		return response.AttendanceResponseDTO{}, err
	}

	slf.logger.Info().Uint("userId", userID).Msg("Checked in")
	return slf.attendanceMapper.EntityToResponse(record), nil
}

// CheckOut closes today's record and computes the worked hours.
func (slf *AttendanceService) CheckOut(userID uint, dto request.CheckOutDTO) (response.AttendanceResponseDTO, error) {
	record, err := slf.attendanceRepo.FindTodayForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AttendanceResponseDTO{}, errors.New("not checked in today")
		}
		return response.AttendanceResponseDTO{}, err
	}
	if record.Status == "checked_out" || record.CheckInTime == nil {
		return response.AttendanceResponseDTO{}, errors.New("not checked in")
	}

	now := time.Now()
	record.CheckOutTime = &now
	record.Status = "checked_out"
	if dto.Notes != "" {
		record.Notes = dto.Notes
	}
	record.WorkHours = formatWorkHours(*record.CheckInTime, now, record.BreakStart, record.BreakEnd)

	if err := slf.attendanceRepo.Update(&record); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error closing attendance record")
		return response.AttendanceResponseDTO{}, err
	}

	slf.logger.Info().Uint("userId", userID).Str("workHours", record.WorkHours).Msg("Checked out")
	return slf.attendanceMapper.EntityToResponse(record), nil
}

// StartBreak and EndBreak toggle the break window inside an open record.
func (slf *AttendanceService) StartBreak(userID uint) (response.AttendanceResponseDTO, error) {
	record, err := slf.attendanceRepo.FindTodayForUser(userID)
	if err != nil || record.Status != "checked_in" {
		return response.AttendanceResponseDTO{}, errors.New("not checked in")
	}

	now := time.Now()
	record.BreakStart = &now
	record.Status = "on_break"
	if err := slf.attendanceRepo.Update(&record); err != nil {
		return response.AttendanceResponseDTO{}, err
	}
	return slf.attendanceMapper.EntityToResponse(record), nil
}

func (slf *AttendanceService) EndBreak(userID uint) (response.AttendanceResponseDTO, error) {
	record, err := slf.attendanceRepo.FindTodayForUser(userID)
	if err != nil || record.Status != "on_break" {
		return response.AttendanceResponseDTO{}, errors.New("not on break")
	}

	now := time.Now()
	record.BreakEnd = &now
	record.Status = "checked_in"
	if err := slf.attendanceRepo.Update(&record); err != nil {
		return response.AttendanceResponseDTO{}, err
	}
	return slf.attendanceMapper.EntityToResponse(record), nil
}

func (slf *AttendanceService) Today(userID uint) (response.AttendanceResponseDTO, error) {
	record, err := slf.attendanceRepo.FindTodayForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AttendanceResponseDTO{}, errors.New("no attendance record today")
		}
		return response.AttendanceResponseDTO{}, err
	}
	return slf.attendanceMapper.EntityToResponse(record), nil
}

// TeamOverview is the manager view: every team member's records in a window.
func (slf *AttendanceService) TeamOverview(managerID uint, from, to time.Time) ([]response.AttendanceResponseDTO, error) {
	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != models.RoleManager {
		return nil, errors.New("only managers can view team attendance")
	}

	records, err := slf.attendanceRepo.FindForTeam(manager.TeamID, from, to)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", manager.TeamID).Msg("Error listing team attendance")
		return nil, err
	}
	return slf.attendanceMapper.EntitiesToResponses(records), nil
}

func formatWorkHours(in, out time.Time, breakStart, breakEnd *time.Time) string {
	worked := out.Sub(in)
	if breakStart != nil && breakEnd != nil && breakEnd.After(*breakStart) {
		worked -= breakEnd.Sub(*breakStart)
	}
	if worked < 0 {
		worked = 0
	}
	return fmt.Sprintf("%.2f", worked.Hours())
}
