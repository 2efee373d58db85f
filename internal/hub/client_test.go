package hub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPair upgrades one connection through an httptest server and returns the
// server side; the peer side is held open but never read.
func wsPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = peer.Close() })

	return <-conns, peer
}

func TestClient_SendOverflowTearsConnectionDown(t *testing.T) {
	h, _, _ := newTestHub()
	conn, _ := wsPair(t)

	client := NewClient("c1", 1, RoleWorker, 1, conn, h, zerolog.Nop())
	h.Registry.Register(client.UserID, client.Role, client.TeamID, client)
	client.sync.settle(func([]Message) {})

	// The write pump is never started, so the send buffer fills like it would
	// against a peer that stopped draining.
	var overflowErr error
	for i := 0; i < sendBufSize+1; i++ {
		if err := client.Push(Message{Kind: KindChat, SenderID: 2, Content: "x", SentAt: time.Now()}); err != nil {
			overflowErr = err
			break
		}
	}
	require.ErrorIs(t, overflowErr, errSendBufferFull)

	assert.Eventually(t, func() bool {
		_, ok := h.Registry.Lookup(1)
		return !ok
	}, time.Second, 10*time.Millisecond, "an undrained connection must free its registry slot")
}

func TestClient_PushBuffersWhileHistoryOutstanding(t *testing.T) {
	h, _, _ := newTestHub()
	conn, _ := wsPair(t)

	client := NewClient("c2", 3, RoleWorker, 1, conn, h, zerolog.Nop())
	h.Registry.Register(client.UserID, client.Role, client.TeamID, client)

	// Before the history sync settles, pushes are held rather than sent.
	require.NoError(t, client.Push(Message{Kind: KindChat, SenderID: 2, Content: "early", SentAt: time.Now()}))
	assert.Empty(t, client.send)

	var buffered []Message
	client.sync.settle(func(msgs []Message) { buffered = msgs })
	require.Len(t, buffered, 1)
	assert.Equal(t, "early", buffered[0].Content)

	// After settling, delivery goes straight to the transport buffer.
	require.NoError(t, client.Push(Message{Kind: KindChat, SenderID: 2, Content: "live", SentAt: time.Now()}))
	assert.Len(t, client.send, 1)
}
