package hub

import (
	"sync"
	"time"
)

// Event is a presence transition derived from a registry mutation.
type Event struct {
	UserID uint      `json:"userId"`
	Role   Role      `json:"role"`
	TeamID uint      `json:"teamId"`
	Online bool      `json:"online"`
	At     time.Time `json:"at"`
}

// Tracker exposes Online/Offline state as a read-through view over the
// registry. It owns no connection state of its own, so reported presence can
// never drift from actual connection state.
type Tracker struct {
	reg *Registry

	mu          sync.RWMutex
	transitions map[uint]time.Time
	subs        []func(ev Event)
}

func NewTracker(reg *Registry) *Tracker {
	t := &Tracker{
		reg:         reg,
		transitions: make(map[uint]time.Time),
	}
	reg.Observe(t.apply)
	return t
}

func (t *Tracker) apply(ev Event) {
	t.mu.Lock()
	t.transitions[ev.UserID] = ev.At
	subs := make([]func(Event), len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// IsOnline reports whether the user currently has a live channel.
func (t *Tracker) IsOnline(userID uint) bool {
	_, ok := t.reg.Lookup(userID)
	return ok
}

// LastTransition returns when the user last changed presence state.
func (t *Tracker) LastTransition(userID uint) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	at, ok := t.transitions[userID]
	return at, ok
}

// OnChange registers a listener invoked synchronously whenever a registry
// mutation changes a user's presence. Push-based only; no polling.
func (t *Tracker) OnChange(fn func(ev Event)) {
	t.mu.Lock()
	t.subs = append(t.subs, fn)
	t.mu.Unlock()
}

// TeamOnline returns the ids of every connected user in the team, for the
// manager dashboard's live-connected indicator.
func (t *Tracker) TeamOnline(teamID uint) []uint {
	return t.reg.UsersInTeam(teamID)
}
