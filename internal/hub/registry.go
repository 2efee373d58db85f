package hub

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type entry struct {
	userID uint
	role   Role
	teamID uint
	ch     Channel
}

// Registry owns the mapping from user id to live channel. It is the single
// source of truth for whether a user is currently reachable, and guarantees
// at most one live channel per user at any instant.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint]*entry

	onPresence func(ev Event)

	logger zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		entries: make(map[uint]*entry),
		logger:  logger,
	}
}

// Observe installs the presence hook invoked synchronously on every
// Online/Offline transition. Call during wiring, before connections arrive.
func (r *Registry) Observe(fn func(ev Event)) {
	r.mu.Lock()
	r.onPresence = fn
	r.mu.Unlock()
}

// Register installs ch as the user's live channel. Any prior channel for the
// same user is evicted atomically and then closed, so concurrent reconnects
// resolve to "last register wins". Returns whether a prior connection was
// superseded.
func (r *Registry) Register(userID uint, role Role, teamID uint, ch Channel) bool {
	r.mu.Lock()
	prev, had := r.entries[userID]
	r.entries[userID] = &entry{userID: userID, role: role, teamID: teamID, ch: ch}
	hook := r.onPresence
	r.mu.Unlock()

	if had {
		// The swap above already removed the old entry, so at-most-one holds
		// even before the close completes. Closing can block on a stalled
		// peer's write and must never run under the lock, where it would
		// stall every other user's lookup.
		_ = prev.ch.Close()
	}

	r.logger.Info().
		Uint("userId", userID).
		Str("role", string(role)).
		Uint("teamId", teamID).
		Bool("superseded", had).
		Msg("Connection registered")

	// Supersession is not a presence transition: the user never went offline.
	if !had && hook != nil {
		hook(Event{UserID: userID, Role: role, TeamID: teamID, Online: true, At: time.Now()})
	}
	return had
}

// Unregister removes the user's entry only if the stored channel is the same
// instance as ch. A stale close callback from an already-superseded channel
// must not delete the replacement entry.
func (r *Registry) Unregister(userID uint, ch Channel) {
	r.mu.Lock()
	cur, ok := r.entries[userID]
	if !ok || cur.ch != ch {
		r.mu.Unlock()
		return
	}
	delete(r.entries, userID)
	hook := r.onPresence
	r.mu.Unlock()

	r.logger.Info().Uint("userId", userID).Msg("Connection unregistered")

	if hook != nil {
		hook(Event{UserID: userID, Role: cur.role, TeamID: cur.teamID, Online: false, At: time.Now()})
	}
}

// Lookup returns the user's live channel if one exists. Never blocks waiting
// for a connection to appear.
func (r *Registry) Lookup(userID uint) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	return e.ch, true
}

// AllInRoleAndTeam returns a snapshot of the channels for every connected
// user with the given role in the given team. Entries added after the
// snapshot are not included; broadcast is best-effort for currently-connected
// recipients.
func (r *Registry) AllInRoleAndTeam(role Role, teamID uint) []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chans []Channel
	for _, e := range r.entries {
		if e.role == role && e.teamID == teamID {
			chans = append(chans, e.ch)
		}
	}
	return chans
}

// UsersInTeam returns the ids of every connected user in the team.
func (r *Registry) UsersInTeam(teamID uint) []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uint
	for _, e := range r.entries {
		if e.teamID == teamID {
			ids = append(ids, e.userID)
		}
	}
	return ids
}
