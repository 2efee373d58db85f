package service

import (
	"context"
	"errors"
	"fmt"

	"workhub"
	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/internal/hub"

	"github.com/rs/zerolog"
)

// MessageService persists hub traffic. It is the storage collaborator of the
// router and the reconciler: Persist writes one row per recipient, History
// replays everything a user sent or received.
type MessageService struct {
	messageRepo *repo.MessageRepository
	userRepo    *repo.UserRepository
	logger      zerolog.Logger
}

func NewMessageService() *MessageService {
	return &MessageService{
		messageRepo: repo.NewMessageRepository(),
		userRepo:    repo.NewUserRepository(),
		logger:      workhub.Logger,
	}
}

// NewMessageServiceWith builds the service from explicit collaborators, for
// wiring outside the global config path.
func NewMessageServiceWith(messageRepo *repo.MessageRepository, userRepo *repo.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, logger: logger}
}

func (slf *MessageService) Persist(ctx context.Context, msg hub.Message) ([]hub.Record, error) {
	recipients, err := slf.recipientsFor(msg)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, errors.New("message has no recipients")
	}

	rows := make([]models.Message, 0, len(recipients))
	for _, recipientID := range recipients {
		rows = append(rows, models.Message{
			Kind:        storedKind(msg.Kind),
			SenderID:    msg.SenderID,
			RecipientID: recipientID,
			TeamID:      msg.TeamID,
			Content:     msg.Content,
			SentAt:      msg.SentAt,
		})
	}

	if err := slf.messageRepo.CreateBatch(rows); err != nil {
		slf.logger.Error().Err(err).Str("kind", string(msg.Kind)).Msg("Error persisting message batch")
		return nil, err
	}

	records := make([]hub.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

func (slf *MessageService) History(ctx context.Context, userID uint) ([]hub.Record, error) {
	rows, err := slf.messageRepo.FindHistoryForUser(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error loading message history")
		return nil, err
	}

	records := make([]hub.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// recipientsFor resolves the stored fan-out for a message. Incident alerts
// reach every team manager, connected or not, so offline managers still see
// the alert in their history on next connect. Chat addressed to the agent has
// no user recipient and is stored under the sender's own conversation.
func (slf *MessageService) recipientsFor(msg hub.Message) ([]uint, error) {
	if msg.ToAgent {
		return []uint{msg.SenderID}, nil
	}
	if msg.Kind != hub.KindIncidentAlert {
		return msg.Targets, nil
	}

	managers, err := slf.userRepo.FindByRoleAndTeam(models.RoleManager, msg.TeamID)
	if err != nil {
		return nil, fmt.Errorf("resolve team managers: %w", err)
	}
	ids := make([]uint, 0, len(managers))
	for _, manager := range managers {
		ids = append(ids, manager.ID)
	}
	return ids, nil
}

// storedKind maps a routed kind to its persisted form. Agent replies are part
// of the worker's chat conversation and are stored as chat, so history
// replays the whole exchange uniformly.
func storedKind(kind hub.Kind) string {
	if kind == hub.KindAgentResponse {
		return string(hub.KindChat)
	}
	return string(kind)
}

func recordFromRow(row models.Message) hub.Record {
	return hub.Record{
		ID:          row.ID,
		Kind:        hub.Kind(row.Kind),
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Content:     row.Content,
		SentAt:      row.SentAt,
	}
}
