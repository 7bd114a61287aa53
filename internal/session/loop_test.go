package session

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestLoopDecodesInOrder(t *testing.T) {
	h := newHarness(t)
	var seen []ScreenKind
	decode := func(st *State, k tea.KeyMsg) (Event, bool) {
		seen = append(seen, st.Screen.Kind)
		if k.String() == "q" {
			return Quit{}, true
		}
		return nil, false
	}
	var notified int
	l := NewLoop(h.s, decode, func() { notified++ })

	l.Send(EnterScreen{Screen: LoginScreen()})
	l.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	l.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))

	require.Equal(t, []ScreenKind{ScreenLogin, ScreenLogin}, seen)
	require.Equal(t, 2, notified, "undecoded keys do not redraw")
	require.True(t, h.s.Quitting())

	select {
	case <-l.Done():
	default:
		t.Fatal("done not closed")
	}
	l.Send(Resize{})
}

func TestLoopStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	l := NewLoop(h.s, func(*State, tea.KeyMsg) (Event, bool) { return nil, false }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx), context.Canceled)
}

func TestSchedulerPoll(t *testing.T) {
	var (
		mu  sync.Mutex
		got []TimeoutType
	)
	sc := NewScheduler(map[TimeoutType]time.Duration{
		TimeoutLogin:    time.Second,
		TimeoutCubeTick: 100 * time.Millisecond,
	}, func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev.(TimeoutTick).Type)
	})
	require.Equal(t, 50*time.Millisecond, sc.resolution)

	start := sc.timers[TimeoutLogin].LastUpdate
	sc.timers[TimeoutCubeTick].LastUpdate = start

	sc.poll(start.Add(50 * time.Millisecond))
	require.Empty(t, got)

	sc.poll(start.Add(100 * time.Millisecond))
	require.Equal(t, []TimeoutType{TimeoutCubeTick}, got)

	sc.poll(start.Add(time.Second))
	require.Equal(t, []TimeoutType{TimeoutCubeTick, TimeoutCubeTick, TimeoutLogin}, got)
}

func TestSchedulerResolutionFloor(t *testing.T) {
	sc := NewScheduler(map[TimeoutType]time.Duration{TimeoutCubeTick: 4 * time.Millisecond}, func(Event) {})
	require.Equal(t, 10*time.Millisecond, sc.resolution)
	require.Nil(t, sc.timers[TimeoutLogin])
}
