package realtime

import (
	"time"

	"workhub/internal/hub"
)

// Notice is the wire form of a domain event crossing NATS between the API
// services and the hub. One notice becomes one routed hub message.
type Notice struct {
	Kind     string    `json:"kind"`
	SenderID uint      `json:"senderId"`
	TeamID   uint      `json:"teamId"`
	Targets  []uint    `json:"targets"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sentAt"`
}

func (n Notice) toMessage() hub.Message {
	return hub.Message{
		Kind:     hub.Kind(n.Kind),
		SenderID: n.SenderID,
		TeamID:   n.TeamID,
		Targets:  n.Targets,
		Content:  n.Content,
		SentAt:   n.SentAt,
	}
}
