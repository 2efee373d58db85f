package hub

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*Router, *Registry, *fakeStore, *fakeAgent) {
	reg := NewRegistry(zerolog.Nop())
	store := newFakeStore()
	agent := &fakeAgent{}
	return NewRouter(reg, store, agent, zerolog.Nop()), reg, store, agent
}

func TestRouter_ChatPushedToConnectedTarget(t *testing.T) {
	router, reg, store, _ := newTestRouter()

	target := &fakeChannel{}
	reg.Register(2, RoleManager, 1, target)

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		Targets:  []uint{2},
		Content:  "hello",
	})
	require.NoError(t, err)

	pushed := target.pushedMessages()
	require.Len(t, pushed, 1)
	assert.Equal(t, "hello", pushed[0].Content)
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_ChatToOfflineTargetPersistsWithoutError(t *testing.T) {
	router, _, store, _ := newTestRouter()

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		Targets:  []uint{2},
		Content:  "need help",
	})
	require.NoError(t, err, "an offline recipient is the normal case, not an error")

	persisted := store.persistedMessages()
	require.Len(t, persisted, 1)
	assert.Equal(t, "need help", persisted[0].Content)
}

func TestRouter_PersistenceFailureSurfacedButPushStands(t *testing.T) {
	router, reg, store, _ := newTestRouter()
	store.persistErr = errBoom

	target := &fakeChannel{}
	reg.Register(2, RoleWorker, 1, target)

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		Targets:  []uint{2},
		Content:  "hi",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)

	// The live delivery already made is never retracted.
	assert.Len(t, target.pushedMessages(), 1)
}

func TestRouter_IncidentAlertBroadcastsToTeamManagers(t *testing.T) {
	router, reg, store, _ := newTestRouter()

	m1 := &fakeChannel{}
	m2 := &fakeChannel{}
	otherTeam := &fakeChannel{}
	reporter := &fakeChannel{}
	reg.Register(10, RoleManager, 1, m1)
	reg.Register(11, RoleManager, 1, m2)
	reg.Register(12, RoleManager, 2, otherTeam)
	reg.Register(1, RoleWorker, 1, reporter)
	// Manager 13 of team 1 stays offline; the store still fans a record out
	// for them.

	err := router.Route(context.Background(), Message{
		Kind:     KindIncidentAlert,
		SenderID: 1,
		TeamID:   1,
		Content:  "gas leak in the basement",
	})
	require.NoError(t, err)

	assert.Len(t, m1.pushedMessages(), 1)
	assert.Len(t, m2.pushedMessages(), 1)
	assert.Empty(t, otherTeam.pushedMessages(), "routing never crosses team boundaries")
	assert.Empty(t, reporter.pushedMessages())
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_TaskNoticeFansOutPerAssignee(t *testing.T) {
	router, reg, store, _ := newTestRouter()

	w1 := &fakeChannel{}
	w2 := &fakeChannel{}
	reg.Register(5, RoleWorker, 1, w1)
	reg.Register(6, RoleWorker, 1, w2)

	err := router.Route(context.Background(), Message{
		Kind:     KindTaskNotice,
		SenderID: 10,
		TeamID:   1,
		Targets:  []uint{5, 6, 7}, // 7 is offline
		Content:  "Task assigned: inspect pump room",
	})
	require.NoError(t, err)

	assert.Len(t, w1.pushedMessages(), 1)
	assert.Len(t, w2.pushedMessages(), 1)
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_AgentChatForwardedNotPushed(t *testing.T) {
	router, reg, store, agent := newTestRouter()

	self := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, self)

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		ToAgent:  true,
		Content:  "when is my next task due?",
	})
	require.NoError(t, err)

	require.Len(t, agent.forwardedMessages(), 1)
	assert.Empty(t, self.pushedMessages())
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_AgentForwardFailureStillPersists(t *testing.T) {
	router, _, store, agent := newTestRouter()
	agent.forwardErr = errBoom

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		ToAgent:  true,
		Content:  "hello?",
	})
	require.NoError(t, err)
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_AgentResponsePushedToWorkerAndManager(t *testing.T) {
	router, reg, store, _ := newTestRouter()

	worker := &fakeChannel{}
	manager := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, worker)
	reg.Register(10, RoleManager, 1, manager)

	err := router.Route(context.Background(), Message{
		Kind:     KindAgentResponse,
		SenderID: 0,
		TeamID:   1,
		Targets:  []uint{1, 10},
		Content:  "Your next task is due tomorrow.",
	})
	require.NoError(t, err)

	assert.Len(t, worker.pushedMessages(), 1)
	assert.Len(t, manager.pushedMessages(), 1)
	assert.Len(t, store.persistedMessages(), 1)
}

func TestRouter_UnknownKindRejected(t *testing.T) {
	router, _, store, _ := newTestRouter()

	err := router.Route(context.Background(), Message{Kind: Kind("bogus"), SenderID: 1})
	require.Error(t, err)
	assert.Empty(t, store.persistedMessages())
}

func TestRouter_NoSilentLoss(t *testing.T) {
	// With nobody connected, every kind still reaches the store.
	kinds := []Kind{KindChat, KindIncidentAlert, KindTaskNotice, KindAgentResponse, KindSystem}

	for _, kind := range kinds {
		router, _, store, _ := newTestRouter()
		err := router.Route(context.Background(), Message{
			Kind:     kind,
			SenderID: 1,
			TeamID:   1,
			Targets:  []uint{2},
			Content:  "payload",
		})
		require.NoError(t, err, string(kind))
		assert.Len(t, store.persistedMessages(), 1, string(kind))
	}
}

func TestRouter_OrderPreservedPerRecipient(t *testing.T) {
	router, reg, _, _ := newTestRouter()

	target := &fakeChannel{}
	reg.Register(2, RoleWorker, 1, target)

	for i := 0; i < 20; i++ {
		err := router.Route(context.Background(), Message{
			Kind:     KindChat,
			SenderID: 1,
			TeamID:   1,
			Targets:  []uint{2},
			Content:  string(rune('a' + i)),
			SentAt:   time.Now(),
		})
		require.NoError(t, err)
	}

	pushed := target.pushedMessages()
	require.Len(t, pushed, 20)
	for i := 1; i < len(pushed); i++ {
		assert.Less(t, pushed[i-1].Content, pushed[i].Content, "delivery must preserve submission order")
	}
}

func TestRouter_FailedPushIsNotRouterError(t *testing.T) {
	router, reg, store, _ := newTestRouter()

	stalled := &fakeChannel{pushErr: errSendBufferFull}
	reg.Register(2, RoleWorker, 1, stalled)

	err := router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		Targets:  []uint{2},
		Content:  "hi",
	})
	require.NoError(t, err, "a transport failure mid-send is a no-op for the router")
	assert.Len(t, store.persistedMessages(), 1)
}
