package hub

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records deliveries in place of a live WebSocket transport.
type fakeChannel struct {
	mu        sync.Mutex
	pushed    []Message
	announced []Event
	closed    bool
	pushErr   error
}

func (f *fakeChannel) Push(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, msg)
	return nil
}

func (f *fakeChannel) Announce(ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announced = append(f.announced, ev)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) pushedMessages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.pushed))
	copy(out, f.pushed)
	return out
}

func (f *fakeChannel) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeStore is an in-memory persistence collaborator.
type fakeStore struct {
	mu         sync.Mutex
	persisted  []Message
	history    map[uint][]Record
	persistErr error
	historyErr error
	nextID     uint

	// historyGate, when set, blocks History until released. Used to keep a
	// fetch outstanding while live messages arrive.
	historyGate chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{history: make(map[uint][]Record)}
}

func (f *fakeStore) Persist(_ context.Context, msg Message) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.persistErr != nil {
		return nil, f.persistErr
	}
	f.persisted = append(f.persisted, msg)
	f.nextID++
	recipient := uint(0)
	if len(msg.Targets) > 0 {
		recipient = msg.Targets[0]
	}
	return []Record{{
		ID:          f.nextID,
		Kind:        msg.Kind,
		SenderID:    msg.SenderID,
		RecipientID: recipient,
		Content:     msg.Content,
		SentAt:      msg.SentAt,
	}}, nil
}

func (f *fakeStore) History(_ context.Context, userID uint) ([]Record, error) {
	if f.historyGate != nil {
		<-f.historyGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history[userID], nil
}

func (f *fakeStore) persistedMessages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.persisted))
	copy(out, f.persisted)
	return out
}

// fakeAgent records forwards to the external agent service.
type fakeAgent struct {
	mu         sync.Mutex
	forwarded  []Message
	forwardErr error
}

func (f *fakeAgent) Forward(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forwardErr != nil {
		return f.forwardErr
	}
	f.forwarded = append(f.forwarded, msg)
	return nil
}

func (f *fakeAgent) forwardedMessages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.forwarded))
	copy(out, f.forwarded)
	return out
}

func newTestHub() (*Hub, *fakeStore, *fakeAgent) {
	store := newFakeStore()
	agent := &fakeAgent{}
	return New(store, agent, zerolog.Nop()), store, agent
}

func TestHub_PresenceAnnouncedToTeamManagers(t *testing.T) {
	h, _, _ := newTestHub()

	managerCh := &fakeChannel{}
	h.Registry.Register(10, RoleManager, 1, managerCh)

	otherTeamManagerCh := &fakeChannel{}
	h.Registry.Register(20, RoleManager, 2, otherTeamManagerCh)

	workerCh := &fakeChannel{}
	h.Registry.Register(30, RoleWorker, 1, workerCh)

	managerCh.mu.Lock()
	events := append([]Event(nil), managerCh.announced...)
	managerCh.mu.Unlock()

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, uint(30), last.UserID)
	assert.True(t, last.Online)

	// Managers of other teams never see the transition.
	otherTeamManagerCh.mu.Lock()
	for _, ev := range otherTeamManagerCh.announced {
		assert.NotEqual(t, uint(30), ev.UserID)
	}
	otherTeamManagerCh.mu.Unlock()

	h.Registry.Unregister(30, workerCh)

	managerCh.mu.Lock()
	last = managerCh.announced[len(managerCh.announced)-1]
	managerCh.mu.Unlock()
	assert.Equal(t, uint(30), last.UserID)
	assert.False(t, last.Online)
}

func TestHub_OfflineChatThenConnectSeesHistoryOnce(t *testing.T) {
	// Scenario: worker 1 chats to manager 2 who is offline, then the manager
	// connects and the record shows up in the merged view exactly once.
	h, store, _ := newTestHub()

	workerCh := &fakeChannel{}
	h.Registry.Register(1, RoleWorker, 1, workerCh)

	err := h.Router.Route(context.Background(), Message{
		Kind:     KindChat,
		SenderID: 1,
		TeamID:   1,
		Targets:  []uint{2},
		Content:  "need help",
	})
	require.NoError(t, err)

	persisted := store.persistedMessages()
	require.Len(t, persisted, 1)
	assert.Equal(t, "need help", persisted[0].Content)

	store.mu.Lock()
	store.history[2] = []Record{{ID: 1, Kind: KindChat, SenderID: 1, RecipientID: 2, Content: "need help", SentAt: persisted[0].SentAt}}
	store.mu.Unlock()

	var view HistoryView
	s := newHistorySync()
	h.Reconciler.Load(context.Background(), 2, s, func(v HistoryView) { view = v })

	require.True(t, view.Complete)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "need help", view.Records[0].Content)
}

var errBoom = errors.New("boom")
