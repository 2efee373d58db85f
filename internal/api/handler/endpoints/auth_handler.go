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

type authHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
	config      workhub.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		userService: service.NewUserService(),
		logger:      workhub.Logger,
		config:      workhub.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
		protected.POST("/me/password", h.changePassword)
		protected.GET("/team/members", h.getTeamMembers)
	}

	managers := router.Group("/api/v1/workers")
	managers.Use(middleware.AuthMiddleware(h.config))
	managers.Use(middleware.RequireRole(models.RoleManager))
	{
		managers.POST("", h.createWorker)
	}
}

// register creates a manager account with its team. Workers join through
// createWorker only.
func (slf *authHandler) register(c *gin.Context) {
	var registerDTO request.RegisterDTO

	err := pkg.ParseAndValidate(c, &registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating register DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.Register(registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error registering user")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, authResponse)
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO
	err := pkg.ParseAndValidate(c, &loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating login DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.Login(loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error logging in user")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshTokenDTO
	err := pkg.ParseAndValidate(c, &refreshDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating refresh token DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.RefreshToken(refreshDTO.RefreshToken)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error refreshing token")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) getMe(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	user, err := slf.userService.GetByID(userID.(uint))
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID.(uint)).Msg("Error getting user")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (slf *authHandler) changePassword(c *gin.Context) {
	userID := c.GetUint("userID")

	var dto request.ChangePasswordDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.userService.ChangePassword(userID, dto); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error changing password")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *authHandler) createWorker(c *gin.Context) {
	managerID := c.GetUint("userID")

	var dto request.CreateWorkerDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	worker, err := slf.userService.CreateWorker(managerID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("managerId", managerID).Msg("Error creating worker")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, worker)
}

func (slf *authHandler) getTeamMembers(c *gin.Context) {
	userID := c.GetUint("userID")

	me, err := slf.userService.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	members, err := slf.userService.GetTeamMembers(me.TeamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", me.TeamID).Msg("Error listing team members")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list team members"})
		return
	}

	c.JSON(http.StatusOK, members)
}
