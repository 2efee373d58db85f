package endpoints

import (
	"net/http"

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

type incidentHandler struct {
	incidentService *service.IncidentService
	userService     *service.UserService
	logger          zerolog.Logger
	config          workhub.AppConfig
}

func IncidentHandler(router *graceful.Graceful, incidentService *service.IncidentService) {
	h := &incidentHandler{
		incidentService: incidentService,
		userService:     service.NewUserService(),
		logger:          workhub.Logger,
		config:          workhub.GetConfig(),
	}

	incidents := router.Group("/api/v1/incidents")
	incidents.Use(middleware.AuthMiddleware(h.config))
	{
		incidents.POST("", h.report)
		incidents.GET("", h.list)
	}

	managerIncidents := router.Group("/api/v1/incidents")
	managerIncidents.Use(middleware.AuthMiddleware(h.config))
	managerIncidents.Use(middleware.RequireRole(models.RoleManager))
	{
		managerIncidents.PATCH("/:incidentId", h.update)
		managerIncidents.GET("/stats", h.stats)
	}
}

func (slf *incidentHandler) report(c *gin.Context) {
	userID := c.GetUint("userID")

	var dto request.CreateIncidentDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating incident DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	incident, err := slf.incidentService.Report(userID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error reporting incident")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, incident)
}

func (slf *incidentHandler) list(c *gin.Context) {
	userID := c.GetUint("userID")

	me, err := slf.userService.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	incidents, err := slf.incidentService.ListForTeam(me.TeamID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list incidents"})
		return
	}

	c.JSON(http.StatusOK, incidents)
}

func (slf *incidentHandler) update(c *gin.Context) {
	managerID := c.GetUint("userID")
	incidentID, err := parseIDParam(c, "incidentId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid incident ID"})
		return
	}

	var dto request.UpdateIncidentDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	incident, err := slf.incidentService.Update(managerID, incidentID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("incidentId", incidentID).Msg("Error updating incident")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, incident)
}

func (slf *incidentHandler) stats(c *gin.Context) {
	managerID := c.GetUint("userID")

	me, err := slf.userService.GetByID(managerID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	stats, err := slf.incidentService.Stats(me.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to compute incident stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
