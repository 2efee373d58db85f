package hub

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_IsOnlineTracksRegistry(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	tracker := NewTracker(reg)

	assert.False(t, tracker.IsOnline(1))

	ch := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, ch)
	assert.True(t, tracker.IsOnline(1))

	reg.Unregister(1, ch)
	assert.False(t, tracker.IsOnline(1))
}

func TestTracker_SupersededConnectionStaysOnline(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	tracker := NewTracker(reg)

	first := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, first)
	second := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, second)

	assert.True(t, tracker.IsOnline(1))

	// The first tab's stale close must not mark the user offline.
	reg.Unregister(1, first)
	assert.True(t, tracker.IsOnline(1))

	reg.Unregister(1, second)
	assert.False(t, tracker.IsOnline(1))
}

func TestTracker_OnChangeInvokedSynchronously(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	tracker := NewTracker(reg)

	var events []Event
	tracker.OnChange(func(ev Event) { events = append(events, ev) })

	ch := &fakeChannel{}
	reg.Register(4, RoleManager, 2, ch)

	require.Len(t, events, 1)
	assert.Equal(t, uint(4), events[0].UserID)
	assert.True(t, events[0].Online)
	assert.False(t, events[0].At.IsZero())

	reg.Unregister(4, ch)
	require.Len(t, events, 2)
	assert.False(t, events[1].Online)
}

func TestTracker_LastTransition(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	tracker := NewTracker(reg)

	_, ok := tracker.LastTransition(1)
	assert.False(t, ok)

	ch := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, ch)
	online, ok := tracker.LastTransition(1)
	require.True(t, ok)

	reg.Unregister(1, ch)
	offline, ok := tracker.LastTransition(1)
	require.True(t, ok)
	assert.False(t, offline.Before(online))
}

func TestTracker_TeamOnline(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	tracker := NewTracker(reg)

	reg.Register(1, RoleWorker, 1, &fakeChannel{})
	reg.Register(2, RoleManager, 1, &fakeChannel{})
	reg.Register(3, RoleWorker, 2, &fakeChannel{})

	assert.ElementsMatch(t, []uint{1, 2}, tracker.TeamOnline(1))
	assert.ElementsMatch(t, []uint{3}, tracker.TeamOnline(2))
	assert.Empty(t, tracker.TeamOnline(3))
}
