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

type permissionHandler struct {
	permissionService *service.PermissionService
	logger            zerolog.Logger
	config            workhub.AppConfig
}

func PermissionHandler(router *graceful.Graceful, permissionService *service.PermissionService) {
	h := &permissionHandler{
		permissionService: permissionService,
		logger:            workhub.Logger,
		config:            workhub.GetConfig(),
	}

	permissions := router.Group("/api/v1/permissions")
	permissions.Use(middleware.AuthMiddleware(h.config))
	{
		permissions.POST("", h.submit)
		permissions.GET("/mine", h.listMine)
	}

	managerPermissions := router.Group("/api/v1/permissions")
	managerPermissions.Use(middleware.AuthMiddleware(h.config))
	managerPermissions.Use(middleware.RequireRole(models.RoleManager))
	{
		managerPermissions.GET("", h.listTeam)
		managerPermissions.PATCH("/:requestId", h.decide)
	}
}

func (slf *permissionHandler) submit(c *gin.Context) {
	userID := c.GetUint("userID")

	var dto request.CreatePermissionDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating permission DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	permission, err := slf.permissionService.Submit(userID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error submitting permission request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, permission)
}

func (slf *permissionHandler) listMine(c *gin.Context) {
	userID := c.GetUint("userID")

	permissions, err := slf.permissionService.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list permission requests"})
		return
	}

	c.JSON(http.StatusOK, permissions)
}

func (slf *permissionHandler) listTeam(c *gin.Context) {
	managerID := c.GetUint("userID")

	permissions, err := slf.permissionService.ListForTeam(managerID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, permissions)
}

func (slf *permissionHandler) decide(c *gin.Context) {
	managerID := c.GetUint("userID")
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid request ID"})
		return
	}

	var dto request.DecidePermissionDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	permission, err := slf.permissionService.Decide(managerID, requestID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("requestId", requestID).Msg("Error deciding permission request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, permission)
}
