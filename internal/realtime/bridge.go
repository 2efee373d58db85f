package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"workhub/internal/hub"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Bridge subscribes to NATS notice subjects and routes them through the Hub,
// so domain events published anywhere land on this instance's connections.
type Bridge struct {
	conn   *nats.Conn
	hub    *hub.Hub
	sub    *nats.Subscription
	logger zerolog.Logger
}

func NewBridge(natsURL string, h *hub.Hub, logger zerolog.Logger) (*Bridge, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Bridge{conn: nc, hub: h, logger: logger}, nil
}

// Subscribe listens for notices on team.*.notice and feeds them to the router.
func (slf *Bridge) Subscribe() error {
	const subject = "team.*.notice"
	sub, err := slf.conn.Subscribe(subject, func(msg *nats.Msg) {
		var notice Notice
		if err := json.Unmarshal(msg.Data, &notice); err != nil {
			slf.logger.Error().Err(err).Str("subject", msg.Subject).Msg("Bad notice payload")
			return
		}
		if err := slf.hub.Router.Route(context.Background(), notice.toMessage()); err != nil {
			slf.logger.Error().Err(err).Str("kind", notice.Kind).Msg("Notice routing failed")
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", subject, err)
	}
	slf.sub = sub

	slf.logger.Info().Str("subject", subject).Msg("NATS bridge subscribed")
	return nil
}

// Close drains the NATS connection.
func (slf *Bridge) Close() {
	if err := slf.conn.Drain(); err != nil {
		slf.logger.Error().Err(err).Msg("nats drain")
	}
}
