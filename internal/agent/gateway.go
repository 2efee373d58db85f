package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"workhub/internal/hub"

	"github.com/rs/zerolog"
)

// Gateway forwards assistant-addressed chat to the external agent service.
// The agent replies asynchronously over the redis response channel, never on
// this request.
type Gateway struct {
	host   string
	client *http.Client
	logger zerolog.Logger
}

type processRequest struct {
	UserID  uint   `json:"user_id"`
	TeamID  uint   `json:"team_id"`
	Message string `json:"message"`
}

func NewGateway(host string, logger zerolog.Logger) *Gateway {
	return &Gateway{
		host:   host,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (slf *Gateway) Forward(ctx context.Context, msg hub.Message) error {
	payload := processRequest{
		UserID:  msg.SenderID,
		TeamID:  msg.TeamID,
		Message: msg.Content,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/process-message", slf.host), bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := slf.client.Do(req)
	if err != nil {
		return fmt.Errorf("agent call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("agent returned %d: %s", resp.StatusCode, body)
	}

	slf.logger.Debug().Uint("userId", msg.SenderID).Msg("Message forwarded to agent")
	return nil
}
