package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher emits domain notices onto NATS. The API services publish through
// it instead of touching the hub directly, so notices reach every hub
// instance regardless of which process handled the HTTP request.
type Publisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

func NewPublisher(natsURL string, logger zerolog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

func (slf *Publisher) Publish(notice Notice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	subject := fmt.Sprintf("team.%d.notice", notice.TeamID)
	if err := slf.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %q: %w", subject, err)
	}
	slf.logger.Debug().Str("subject", subject).Str("kind", notice.Kind).Msg("Notice published")
	return nil
}

// Close drains the NATS connection.
func (slf *Publisher) Close() {
	if err := slf.conn.Drain(); err != nil {
		slf.logger.Error().Err(err).Msg("nats drain")
	}
}
