package hub

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowCloseChannel simulates a stalled peer whose close handshake hangs.
type slowCloseChannel struct {
	fakeChannel
	delay time.Duration
}

func (s *slowCloseChannel) Close() error {
	time.Sleep(s.delay)
	return s.fakeChannel.Close()
}

func TestRegistry_RegisterSupersedesPrior(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	first := &fakeChannel{}
	superseded := reg.Register(1, RoleWorker, 1, first)
	assert.False(t, superseded)

	second := &fakeChannel{}
	superseded = reg.Register(1, RoleWorker, 1, second)
	assert.True(t, superseded)

	assert.True(t, first.isClosed(), "old channel must be closed on supersession")
	assert.False(t, second.isClosed())

	ch, ok := reg.Lookup(1)
	require.True(t, ok)
	assert.Same(t, second, ch.(*fakeChannel))
}

func TestRegistry_AtMostOneChannelUnderConcurrentRegisters(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	const n = 50
	channels := make([]*fakeChannel, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		channels[i] = &fakeChannel{}
		wg.Add(1)
		go func(ch *fakeChannel) {
			defer wg.Done()
			reg.Register(1, RoleWorker, 1, ch)
		}(channels[i])
	}
	wg.Wait()

	winner, ok := reg.Lookup(1)
	require.True(t, ok)

	open := 0
	for _, ch := range channels {
		if !ch.isClosed() {
			open++
			assert.Same(t, winner.(*fakeChannel), ch)
		}
	}
	assert.Equal(t, 1, open, "all channels but the registered one must be closed")
}

func TestRegistry_UnregisterIgnoresStaleChannel(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	first := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, first)
	second := &fakeChannel{}
	reg.Register(1, RoleWorker, 1, second)

	// The superseded connection's close callback fires late; it must not
	// delete the replacement entry.
	reg.Unregister(1, first)

	ch, ok := reg.Lookup(1)
	require.True(t, ok)
	assert.Same(t, second, ch.(*fakeChannel))

	reg.Unregister(1, second)
	_, ok = reg.Lookup(1)
	assert.False(t, ok)
}

func TestRegistry_AllInRoleAndTeam(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	m1 := &fakeChannel{}
	m2 := &fakeChannel{}
	otherTeam := &fakeChannel{}
	worker := &fakeChannel{}

	reg.Register(1, RoleManager, 7, m1)
	reg.Register(2, RoleManager, 7, m2)
	reg.Register(3, RoleManager, 8, otherTeam)
	reg.Register(4, RoleWorker, 7, worker)

	chans := reg.AllInRoleAndTeam(RoleManager, 7)
	assert.Len(t, chans, 2)

	assert.Empty(t, reg.AllInRoleAndTeam(RoleManager, 9))
	assert.ElementsMatch(t, []uint{1, 2, 4}, reg.UsersInTeam(7))
}

func TestRegistry_PresenceHookTransitions(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	var events []Event
	reg.Observe(func(ev Event) { events = append(events, ev) })

	first := &fakeChannel{}
	reg.Register(5, RoleWorker, 2, first)
	require.Len(t, events, 1)
	assert.True(t, events[0].Online)
	assert.Equal(t, RoleWorker, events[0].Role)
	assert.Equal(t, uint(2), events[0].TeamID)

	// Supersession keeps the user online; no transition fires.
	second := &fakeChannel{}
	reg.Register(5, RoleWorker, 2, second)
	assert.Len(t, events, 1)

	// Stale unregister fires nothing either.
	reg.Unregister(5, first)
	assert.Len(t, events, 1)

	reg.Unregister(5, second)
	require.Len(t, events, 2)
	assert.False(t, events[1].Online)
}

func TestRegistry_SupersessionCloseDoesNotBlockOtherUsers(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	slow := &slowCloseChannel{delay: 500 * time.Millisecond}
	reg.Register(1, RoleWorker, 1, slow)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		reg.Register(1, RoleWorker, 1, &fakeChannel{})
		close(done)
	}()
	<-started
	// Give the re-register time to reach the stalled close.
	time.Sleep(50 * time.Millisecond)

	begin := time.Now()
	reg.Register(2, RoleWorker, 1, &fakeChannel{})
	_, ok := reg.Lookup(2)
	elapsed := time.Since(begin)

	assert.True(t, ok)
	assert.Less(t, elapsed, 200*time.Millisecond,
		"one user's connection teardown must not stall operations for other users")

	<-done
	assert.True(t, slow.isClosed())
	winner, ok := reg.Lookup(1)
	require.True(t, ok)
	assert.NotSame(t, slow, winner)
}

func TestRegistry_LookupMissIsNotAnError(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	for i := uint(0); i < 5; i++ {
		ch, ok := reg.Lookup(i)
		assert.False(t, ok)
		assert.Nil(t, ch)
	}
}

func TestRegistry_ManyUsersIndependentEntries(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	for i := uint(1); i <= 10; i++ {
		reg.Register(i, RoleWorker, i%3, &fakeChannel{})
	}
	for i := uint(1); i <= 10; i++ {
		_, ok := reg.Lookup(i)
		assert.True(t, ok, fmt.Sprintf("user %d should be registered", i))
	}
}
