package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Router translates a message into zero or more delivery attempts through the
// registry, and always triggers durable persistence regardless of the
// live-delivery outcome. A message is never silently dropped: if no live
// recipient exists it still reaches the store so offline recipients see it on
// next connect.
type Router struct {
	reg    *Registry
	store  Store
	agent  AgentGateway
	logger zerolog.Logger
}

func NewRouter(reg *Registry, store Store, agent AgentGateway, logger zerolog.Logger) *Router {
	return &Router{
		reg:    reg,
		store:  store,
		agent:  agent,
		logger: logger,
	}
}

// Route delivers msg per its kind's fan-out rule. Live pushes happen before
// persistence so storage latency never gates real-time delivery; a
// persistence failure is returned to the caller but does not retract pushes
// already made.
func (r *Router) Route(ctx context.Context, msg Message) error {
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}

	switch msg.Kind {
	case KindChat:
		if msg.ToAgent {
			if err := r.agent.Forward(ctx, msg); err != nil {
				r.logger.Warn().Err(err).Uint("senderId", msg.SenderID).Msg("Agent forward failed")
				// The message is still persisted below; the agent can be
				// retried by the sender once it is reachable again.
			}
		} else {
			r.push(msg, msg.Targets...)
		}
	case KindTaskNotice, KindSystem:
		r.push(msg, msg.Targets...)
	case KindAgentResponse:
		// Targets carry the originating worker plus, when known, the team
		// manager for conversation visibility.
		r.push(msg, msg.Targets...)
	case KindIncidentAlert:
		// Best-effort live broadcast to the managers connected right now.
		// The store fans out a record per team manager, connected or not.
		for _, ch := range r.reg.AllInRoleAndTeam(RoleManager, msg.TeamID) {
			r.pushChannel(ch, msg)
		}
	default:
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}

	return r.persist(ctx, msg)
}

// push delivers msg to each explicitly targeted user that is currently
// connected. A lookup miss is the normal offline case, not an error.
func (r *Router) push(msg Message, targets ...uint) {
	for _, userID := range targets {
		ch, ok := r.reg.Lookup(userID)
		if !ok {
			continue
		}
		r.pushChannel(ch, msg)
	}
}

func (r *Router) pushChannel(ch Channel, msg Message) {
	if err := ch.Push(msg); err != nil {
		// A failed push is a transport failure; the connection's close path
		// unregisters it. Nothing to retract here.
		r.logger.Debug().Err(err).Str("kind", string(msg.Kind)).Msg("Live push failed")
	}
}

func (r *Router) persist(ctx context.Context, msg Message) error {
	if _, err := r.store.Persist(ctx, msg); err != nil {
		r.logger.Error().
			Err(err).
			Str("kind", string(msg.Kind)).
			Uint("senderId", msg.SenderID).
			Msg("Failed to persist message")
		return fmt.Errorf("persist %s message: %w", msg.Kind, err)
	}
	return nil
}
