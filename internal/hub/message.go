package hub

import (
	"context"
	"time"
)

// Kind determines how the router fans a message out.
type Kind string

const (
	KindChat          Kind = "chat"
	KindIncidentAlert Kind = "incident_alert"
	KindTaskNotice    Kind = "task_notice"
	KindAgentResponse Kind = "agent_response"
	KindSystem        Kind = "system"
)

// Role determines routing eligibility (broadcast targets).
type Role string

const (
	RoleManager Role = "Manager"
	RoleWorker  Role = "Worker"
)

// Message is a routed message. Instances are never mutated after construction;
// the router and channels treat them as immutable.
type Message struct {
	ID       uint // persisted record id, zero until stored
	Kind     Kind
	SenderID uint
	TeamID   uint
	Targets  []uint // explicit recipients; task notices may carry several
	ToAgent  bool   // chat addressed to the assistant instead of a user
	Content  string
	SentAt   time.Time
}

// Record is a durably stored message as returned by the persistence
// collaborator, ordered oldest-first in history queries.
type Record struct {
	ID          uint      `json:"id"`
	Kind        Kind      `json:"kind"`
	SenderID    uint      `json:"senderId"`
	RecipientID uint      `json:"recipientId"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sentAt"`
}

// Channel is an exclusive handle to one live transport. It is owned by the
// registry entry that holds it; closing it invalidates the entry.
type Channel interface {
	// Push delivers a routed message. It must not block; a full transport
	// buffer is reported as an error and treated like a disconnect.
	Push(msg Message) error

	// Announce delivers a presence transition for dashboard consumers.
	Announce(ev Event) error

	// Close tears the transport down. Best-effort; errors are swallowed by
	// the registry.
	Close() error
}

// Store is the persistence collaborator. Both operations are asynchronous on
// the caller's side and fallible.
type Store interface {
	// Persist durably stores a message, fanning out one record per recipient
	// where the kind requires it (incident alerts reach every team manager,
	// connected or not).
	Persist(ctx context.Context, msg Message) ([]Record, error)

	// History returns all records addressed to or sent by the user,
	// oldest-first.
	History(ctx context.Context, userID uint) ([]Record, error)
}

// AgentGateway is the routing edge to the external AI agent service.
type AgentGateway interface {
	Forward(ctx context.Context, msg Message) error
}
