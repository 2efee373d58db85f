package endpoints

import (
	"net/http"
	"time"

	"workhub"
	"workhub/internal/api/handler/middleware"
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
	"workhub/internal/api/service"
	"workhub/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type attendanceHandler struct {
	attendanceService *service.AttendanceService
	logger            zerolog.Logger
	config            workhub.AppConfig
}

func AttendanceHandler(router *graceful.Graceful) {
	h := &attendanceHandler{
		attendanceService: service.NewAttendanceService(),
		logger:            workhub.Logger,
		config:            workhub.GetConfig(),
	}

	attendance := router.Group("/api/v1/attendance")
	attendance.Use(middleware.AuthMiddleware(h.config))
	{
		attendance.POST("/check-in", h.checkIn)
		attendance.POST("/check-out", h.checkOut)
		attendance.POST("/break/start", h.startBreak)
		attendance.POST("/break/end", h.endBreak)
		attendance.GET("/today", h.today)
	}

	managerAttendance := router.Group("/api/v1/attendance")
	managerAttendance.Use(middleware.AuthMiddleware(h.config))
	managerAttendance.Use(middleware.RequireRole(models.RoleManager))
	{
		managerAttendance.GET("/team", h.teamOverview)
	}
}

func (slf *attendanceHandler) checkIn(c *gin.Context) {
	userID := c.GetUint("userID")

	var dto request.CheckInDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	record, err := slf.attendanceService.CheckIn(userID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error checking in")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (slf *attendanceHandler) checkOut(c *gin.Context) {
	userID := c.GetUint("userID")

	var dto request.CheckOutDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	record, err := slf.attendanceService.CheckOut(userID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error checking out")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (slf *attendanceHandler) startBreak(c *gin.Context) {
	userID := c.GetUint("userID")

	record, err := slf.attendanceService.StartBreak(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (slf *attendanceHandler) endBreak(c *gin.Context) {
	userID := c.GetUint("userID")

	record, err := slf.attendanceService.EndBreak(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (slf *attendanceHandler) today(c *gin.Context) {
	userID := c.GetUint("userID")

	record, err := slf.attendanceService.Today(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// teamOverview accepts an optional from/to window, defaulting to the last
// seven days.
func (slf *attendanceHandler) teamOverview(c *gin.Context) {
	managerID := c.GetUint("userID")

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	records, err := slf.attendanceService.TeamOverview(managerID, from, to)
	if err != nil {
		slf.logger.Error().Err(err).Uint("managerId", managerID).Msg("Error listing team attendance")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
