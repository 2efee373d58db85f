package hub

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_BufferedFollowsHistoryWithoutDuplicates(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	history := []Record{
		{ID: 1, Kind: KindChat, SenderID: 5, RecipientID: 2, Content: "first", SentAt: base},
		{ID: 2, Kind: KindChat, SenderID: 5, RecipientID: 2, Content: "second", SentAt: base.Add(time.Minute)},
	}
	// The second buffered message raced the history query and was captured by
	// both; the historical copy must win and appear exactly once.
	buffered := []Message{
		{Kind: KindChat, SenderID: 5, Content: "second", SentAt: base.Add(time.Minute)},
		{Kind: KindTaskNotice, SenderID: 9, Content: "new assignment", SentAt: base.Add(2 * time.Minute)},
	}

	merged := Merge(2, history, buffered)
	require.Len(t, merged, 3)

	assert.Equal(t, uint(1), merged[0].ID)
	assert.Equal(t, uint(2), merged[1].ID, "the historical copy of the overlap wins")
	assert.Equal(t, "new assignment", merged[2].Content)
	assert.Equal(t, uint(2), merged[2].RecipientID)
}

func TestMerge_DedupByRecordID(t *testing.T) {
	base := time.Now()

	history := []Record{
		{ID: 7, Kind: KindChat, SenderID: 1, RecipientID: 2, Content: "hi", SentAt: base},
	}
	buffered := []Message{
		{ID: 7, Kind: KindChat, SenderID: 1, Content: "hi", SentAt: base.Add(time.Second)},
	}

	merged := Merge(2, history, buffered)
	require.Len(t, merged, 1)
	assert.Equal(t, uint(7), merged[0].ID)
	assert.Equal(t, base, merged[0].SentAt, "persisted copy is canonical")
}

func TestMerge_DistinctRecordsWithIdenticalContentBothKept(t *testing.T) {
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	// Two separate sends of the same text in the same instant are two real
	// records; only a buffered live copy folds into one of them.
	history := []Record{
		{ID: 1, Kind: KindChat, SenderID: 5, RecipientID: 2, Content: "ok", SentAt: at},
		{ID: 2, Kind: KindChat, SenderID: 5, RecipientID: 2, Content: "ok", SentAt: at},
	}
	buffered := []Message{
		{Kind: KindChat, SenderID: 5, Content: "ok", SentAt: at},
	}

	merged := Merge(2, history, buffered)
	require.Len(t, merged, 2)
	assert.Equal(t, uint(1), merged[0].ID)
	assert.Equal(t, uint(2), merged[1].ID)
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(1, nil, nil))

	onlyBuffered := Merge(1, nil, []Message{{Kind: KindChat, SenderID: 2, Content: "x", SentAt: time.Now()}})
	assert.Len(t, onlyBuffered, 1)

	onlyHistory := Merge(1, []Record{{ID: 3, Content: "y"}}, nil)
	assert.Len(t, onlyHistory, 1)
}

func TestHistorySync_HoldsUntilSettled(t *testing.T) {
	s := newHistorySync()

	assert.True(t, s.hold(Message{Content: "while loading"}))

	var buffered []Message
	s.settle(func(msgs []Message) { buffered = msgs })
	require.Len(t, buffered, 1)
	assert.Equal(t, "while loading", buffered[0].Content)

	assert.False(t, s.hold(Message{Content: "live"}), "after settling, delivery goes live")
}

func TestReconciler_BuffersMessagesArrivingDuringFetch(t *testing.T) {
	store := newFakeStore()
	store.historyGate = make(chan struct{})
	store.history[2] = []Record{
		{ID: 1, Kind: KindChat, SenderID: 5, RecipientID: 2, Content: "old", SentAt: time.Now().Add(-time.Hour)},
	}

	rec := NewReconciler(store, zerolog.Nop())
	s := newHistorySync()

	done := make(chan HistoryView, 1)
	go rec.Load(context.Background(), 2, s, func(view HistoryView) { done <- view })

	// The fetch is outstanding; a live task notice for the user is buffered
	// rather than dropped.
	require.True(t, s.hold(Message{Kind: KindTaskNotice, SenderID: 9, Content: "notice", SentAt: time.Now()}))

	close(store.historyGate)

	view := <-done
	require.True(t, view.Complete)
	require.Len(t, view.Records, 2)
	assert.Equal(t, "old", view.Records[0].Content, "fetched history comes first")
	assert.Equal(t, "notice", view.Records[1].Content)
}

func TestReconciler_FetchFailureDegradesToLiveOnlyView(t *testing.T) {
	store := newFakeStore()
	store.historyErr = errBoom

	rec := NewReconciler(store, zerolog.Nop())
	s := newHistorySync()
	require.True(t, s.hold(Message{Kind: KindChat, SenderID: 3, Content: "live one", SentAt: time.Now()}))

	var view HistoryView
	rec.Load(context.Background(), 2, s, func(v HistoryView) { view = v })

	assert.False(t, view.Complete, "client must see an explicit history-unavailable signal")
	require.Len(t, view.Records, 1)
	assert.Equal(t, "live one", view.Records[0].Content)
}

func TestReconciler_DeliverRunsBeforeSubsequentLiveDelivery(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(store, zerolog.Nop())
	s := newHistorySync()

	delivered := false
	rec.Load(context.Background(), 2, s, func(HistoryView) { delivered = true })

	assert.True(t, delivered)
	assert.False(t, s.hold(Message{Content: "after"}), "messages after the view flow live, not re-merged")
}
