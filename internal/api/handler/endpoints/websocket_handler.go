package endpoints

import (
	"net/http"
	"time"

	"workhub"
	"workhub/internal/api/handler/middleware"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
	"workhub/internal/api/service"
	"workhub/internal/hub"
	"workhub/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin
		return true
	},
}

type websocketHandler struct {
	hub         *hub.Hub
	userService *service.UserService
	logger      zerolog.Logger
	config      workhub.AppConfig
}

// WebSocketHandler sets up the connection endpoint and the presence views.
func WebSocketHandler(router *graceful.Graceful, h *hub.Hub) {
	handler := &websocketHandler{
		hub:         h,
		userService: service.NewUserService(),
		logger:      workhub.Logger,
		config:      workhub.GetConfig(),
	}

	// Browsers cannot set headers on websocket dials, so the token rides a
	// query parameter here instead of the Authorization header.
	router.GET("/api/v1/ws", handler.connect)

	presence := router.Group("/api/v1/presence")
	presence.Use(middleware.AuthMiddleware(handler.config))
	{
		presence.GET("/team", handler.teamPresence)
	}
}

func (slf *websocketHandler) connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "Token query parameter required"})
		return
	}

	claims, err := pkg.ValidateToken(token, slf.config.JWTConfig.Secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "Invalid or expired token"})
		return
	}

	user, err := slf.userService.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	clientID := uuid.New().String()
	client := hub.NewClient(clientID, user.ID, hub.Role(user.Role), user.TeamID, conn, slf.hub, slf.logger)
	client.Start()

	slf.logger.Info().
		Str("clientId", clientID).
		Uint("userId", user.ID).
		Uint("teamId", user.TeamID).
		Msg("WebSocket connection established")
}

// teamPresence is the manager dashboard view: every team member with their
// live online flag and last transition time.
func (slf *websocketHandler) teamPresence(c *gin.Context) {
	userID := c.GetUint("userID")

	me, err := slf.userService.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	if me.Role != models.RoleManager {
		c.JSON(http.StatusForbidden, response.APIError{Message: "Only managers can view team presence"})
		return
	}

	members, err := slf.userService.GetTeamMembers(me.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list team members"})
		return
	}

	out := make([]response.PresenceResponseDTO, 0, len(members))
	for _, member := range members {
		dto := response.PresenceResponseDTO{
			UserID:   member.ID,
			FullName: member.FullName,
			Role:     member.Role,
			Online:   slf.hub.Presence.IsOnline(member.ID),
		}
		if at, ok := slf.hub.Presence.LastTransition(member.ID); ok {
			dto.LastTransition = at.Format(time.RFC3339)
		}
		out = append(out, dto)
	}

	c.JSON(http.StatusOK, out)
}
