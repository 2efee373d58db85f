package agent

import (
	"context"
	"encoding/json"
	"time"

	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/internal/hub"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// agentReply is what the agent service publishes on the redis response
// channel once it has processed a forwarded message.
type agentReply struct {
	WorkerID uint   `json:"worker_id"`
	TeamID   uint   `json:"team_id"`
	Content  string `json:"content"`
}

// Bridge subscribes to the agent response channel and routes each reply to
// the worker who asked plus their team managers, so managers see assistant
// traffic on their dashboard.
type Bridge struct {
	redis    *redis.Client
	channel  string
	hub      *hub.Hub
	userRepo *repo.UserRepository
	logger   zerolog.Logger
}

func NewBridge(client *redis.Client, channel string, h *hub.Hub, userRepo *repo.UserRepository, logger zerolog.Logger) *Bridge {
	return &Bridge{
		redis:    client,
		channel:  channel,
		hub:      h,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Listen blocks on the redis subscription until ctx is cancelled.
func (slf *Bridge) Listen(ctx context.Context) {
	sub := slf.redis.Subscribe(ctx, slf.channel)
	defer sub.Close()

	slf.logger.Info().Str("channel", slf.channel).Msg("Agent bridge subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			slf.handle(ctx, msg.Payload)
		}
	}
}

func (slf *Bridge) handle(ctx context.Context, payload string) {
	var reply agentReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		slf.logger.Error().Err(err).Msg("Bad agent reply payload")
		return
	}

	targets := []uint{reply.WorkerID}
	managers, err := slf.userRepo.FindByRoleAndTeam(models.RoleManager, reply.TeamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", reply.TeamID).Msg("Error resolving managers for agent reply")
	} else {
		for _, manager := range managers {
			targets = append(targets, manager.ID)
		}
	}

	msg := hub.Message{
		Kind:    hub.KindAgentResponse,
		TeamID:  reply.TeamID,
		Targets: targets,
		Content: reply.Content,
		SentAt:  time.Now(),
	}
	if err := slf.hub.Router.Route(ctx, msg); err != nil {
		slf.logger.Error().Err(err).Uint("workerId", reply.WorkerID).Msg("Agent reply routing failed")
	}
}
