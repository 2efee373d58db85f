package hub

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// HistoryView is the initial state delivered to a client once reconciliation
// settles. Complete is false when the history fetch failed and the view
// degrades to buffered live messages only.
type HistoryView struct {
	Records  []Record `json:"records"`
	Complete bool     `json:"complete"`
}

// historySync buffers messages routed to one connection while its history
// fetch is outstanding, so nothing routed during the load is dropped.
type historySync struct {
	mu       sync.Mutex
	settled  bool
	buffered []Message
}

func newHistorySync() *historySync {
	return &historySync{}
}

// hold buffers msg and reports true while the fetch is outstanding. Once
// settled it reports false and the caller delivers live.
func (s *historySync) hold(msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settled {
		return false
	}
	s.buffered = append(s.buffered, msg)
	return true
}

// settle marks the sync resolved. fn runs under the buffer lock with the
// buffered messages, before any subsequent live delivery can proceed, so the
// initial view always reaches the transport ahead of later messages.
func (s *historySync) settle(fn func(buffered []Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.buffered)
	s.settled = true
	s.buffered = nil
}

// Reconciler merges persisted history with messages buffered during the
// asynchronous fetch into one ordered, duplicate-free view.
type Reconciler struct {
	store  Store
	logger zerolog.Logger
}

func NewReconciler(store Store, logger zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// Load fetches the user's history and resolves the connection's sync state.
// The fetch holds no registry lock; registry mutations for other users
// proceed during the wait. deliver runs exactly once with the merged view.
func (r *Reconciler) Load(ctx context.Context, userID uint, s *historySync, deliver func(view HistoryView)) {
	records, err := r.store.History(ctx, userID)
	if err != nil {
		r.logger.Warn().Err(err).Uint("userId", userID).Msg("History unavailable, serving live-only view")
	}

	s.settle(func(buffered []Message) {
		if err != nil {
			deliver(HistoryView{Records: recordsFromMessages(userID, buffered), Complete: false})
			return
		}
		deliver(HistoryView{Records: Merge(userID, records, buffered), Complete: true})
	})
}

// mergeKey is the stable identity used to deduplicate a buffered live message
// against the record the in-flight history fetch may also have captured.
// Persisted record id wins when present; otherwise sender, content and the
// origin timestamp identify the message.
type mergeKey struct {
	id      uint
	sender  uint
	content string
	unix    int64
}

// Merge combines history with the messages buffered during the fetch. Each
// logical message appears exactly once; when a message is present in both,
// the historical copy wins since persisted order is authoritative. Buffered
// survivors follow the history in arrival order.
func Merge(userID uint, history []Record, buffered []Message) []Record {
	seen := make(map[mergeKey]struct{}, len(history)*2)
	merged := make([]Record, 0, len(history)+len(buffered))

	for _, rec := range history {
		fallback := mergeKey{sender: rec.SenderID, content: rec.Content, unix: rec.SentAt.UnixNano()}
		if rec.ID != 0 {
			// Record id is the authoritative identity. Two distinct records
			// that happen to share sender, content and timestamp are both
			// kept.
			if _, dup := seen[mergeKey{id: rec.ID}]; dup {
				continue
			}
			seen[mergeKey{id: rec.ID}] = struct{}{}
		} else if _, dup := seen[fallback]; dup {
			continue
		}
		// A buffered live copy of the same message rarely carries the record
		// id, so the fallback identity is indexed for every record.
		seen[fallback] = struct{}{}
		merged = append(merged, rec)
	}

	for _, msg := range buffered {
		fallback := mergeKey{sender: msg.SenderID, content: msg.Content, unix: msg.SentAt.UnixNano()}
		if _, dup := seen[fallback]; dup {
			continue
		}
		if msg.ID != 0 {
			if _, dup := seen[mergeKey{id: msg.ID}]; dup {
				continue
			}
			seen[mergeKey{id: msg.ID}] = struct{}{}
		}
		seen[fallback] = struct{}{}
		merged = append(merged, recordFromMessage(userID, msg))
	}

	return merged
}

func recordFromMessage(userID uint, msg Message) Record {
	return Record{
		ID:          msg.ID,
		Kind:        msg.Kind,
		SenderID:    msg.SenderID,
		RecipientID: userID,
		Content:     msg.Content,
		SentAt:      msg.SentAt,
	}
}

func recordsFromMessages(userID uint, msgs []Message) []Record {
	records := make([]Record, 0, len(msgs))
	for _, msg := range msgs {
		records = append(records, recordFromMessage(userID, msg))
	}
	return records
}
