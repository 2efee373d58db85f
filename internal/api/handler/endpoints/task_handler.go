package endpoints

import (
	"net/http"
	"strconv"

	"workhub"
	"workhub/internal/api/handler/middleware"
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/internal/api/service"
	"workhub/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type taskHandler struct {
	taskService *service.TaskService
	userService *service.UserService
	logger      zerolog.Logger
	config      workhub.AppConfig
}

func TaskHandler(router *graceful.Graceful, taskService *service.TaskService) {
	h := &taskHandler{
		taskService: taskService,
		userService: service.NewUserService(),
		logger:      workhub.Logger,
		config:      workhub.GetConfig(),
	}

	tasks := router.Group("/api/v1/tasks")
	tasks.Use(middleware.AuthMiddleware(h.config))
	{
		tasks.GET("", h.list)
		tasks.GET("/:taskId", h.get)
		tasks.PATCH("/:taskId/status", h.updateStatus)
	}

	managerTasks := router.Group("/api/v1/tasks")
	managerTasks.Use(middleware.AuthMiddleware(h.config))
	managerTasks.Use(middleware.RequireRole(models.RoleManager))
	{
		managerTasks.POST("", h.create)
		managerTasks.PUT("/:taskId", h.update)
		managerTasks.DELETE("/:taskId", h.delete)
	}
}

func (slf *taskHandler) create(c *gin.Context) {
	managerID := c.GetUint("userID")

	var dto request.CreateTaskDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating task DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.Create(managerID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("managerId", managerID).Msg("Error creating task")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (slf *taskHandler) list(c *gin.Context) {
	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	me, err := slf.userService.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	filter := repo.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	// Workers only see their own assignments; managers see the whole team.
	if role != models.RoleManager {
		filter.AssignedTo = userID
	}

	tasks, err := slf.taskService.ListForTeam(me.TeamID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (slf *taskHandler) get(c *gin.Context) {
	userID := c.GetUint("userID")
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid task ID"})
		return
	}

	task, err := slf.taskService.GetByID(userID, taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (slf *taskHandler) update(c *gin.Context) {
	managerID := c.GetUint("userID")
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid task ID"})
		return
	}

	var dto request.UpdateTaskDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.Update(managerID, taskID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error updating task")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (slf *taskHandler) updateStatus(c *gin.Context) {
	userID := c.GetUint("userID")
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid task ID"})
		return
	}

	var dto request.TaskStatusDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.UpdateStatus(userID, taskID, dto)
	if err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error updating task status")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (slf *taskHandler) delete(c *gin.Context) {
	managerID := c.GetUint("userID")
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid task ID"})
		return
	}

	if err := slf.taskService.Delete(managerID, taskID); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Error deleting task")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
