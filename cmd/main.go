package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"workhub"
	"workhub/internal/agent"
	"workhub/internal/api/handler/endpoints"
	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/internal/api/service"
	"workhub/internal/hub"
	"workhub/internal/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	workhub.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if workhub.GetConfig().Mode == "dev" {
		if err := workhub.DB.AutoMigrate(
			&models.Team{},
			&models.User{},
			&models.Message{},
			&models.Task{},
			&models.Incident{},
			&models.Attendance{},
			&models.PermissionRequest{},
		); err != nil {
			workhub.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		workhub.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(workhub.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cfg := workhub.GetConfig()

	// Messaging hub: store-backed router plus the agent edge.
	store := service.NewMessageService()
	gateway := agent.NewGateway(cfg.AgentConfig.Host, workhub.Logger)
	messageHub := hub.New(store, gateway, workhub.Logger)
	workhub.Logger.Info().Msg("Messaging hub started")

	// Domain events published by the API land back on the hub through NATS.
	publisher, err := realtime.NewPublisher(cfg.NatsConfig.URL, workhub.Logger)
	if err != nil {
		workhub.Logger.Fatal().Err(err).Msg("Failed to connect NATS publisher")
	}
	defer publisher.Close()

	bridge, err := realtime.NewBridge(cfg.NatsConfig.URL, messageHub, workhub.Logger)
	if err != nil {
		workhub.Logger.Fatal().Err(err).Msg("Failed to connect NATS bridge")
	}
	defer bridge.Close()
	if err := bridge.Subscribe(); err != nil {
		workhub.Logger.Fatal().Err(err).Msg("Failed to subscribe NATS bridge")
	}

	// Agent replies arrive over redis pub/sub.
	agentBridge := agent.NewBridge(workhub.Redis, cfg.AgentConfig.ResponseChannel, messageHub, repo.NewUserRepository(), workhub.Logger)
	go agentBridge.Listen(ctx)

	initAPI(router, messageHub, publisher)

	workhub.Logger.Debug().Msgf("Starting WorkHub API on port %s", cfg.ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		workhub.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, messageHub *hub.Hub, publisher *realtime.Publisher) {
	endpoints.AuthHandler(router)
	endpoints.WebSocketHandler(router, messageHub)
	endpoints.TaskHandler(router, service.NewTaskService(publisher))
	endpoints.IncidentHandler(router, service.NewIncidentService(publisher))
	endpoints.AttendanceHandler(router)
	endpoints.PermissionHandler(router, service.NewPermissionService(publisher))
}
