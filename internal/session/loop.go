package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Decoder maps a key press to an event for the current state. It runs
// under the session lock and must not modify the state.
type Decoder func(st *State, key tea.KeyMsg) (Event, bool)

type item struct {
	key   tea.KeyMsg
	isKey bool
	ev    Event
}

// Loop is the single consumer of keys and events. Items are handled in
// arrival order, each to completion, including any store or route call.
type Loop struct {
	s      *Session
	decode Decoder
	notify func()
	queue  chan item
	done   chan struct{}
}

// NewLoop wires a session to a decoder. notify, if set, is called after
// every handled item so the renderer can redraw.
func NewLoop(s *Session, decode Decoder, notify func()) *Loop {
	return &Loop{
		s:      s,
		decode: decode,
		notify: notify,
		queue:  make(chan item, 64),
		done:   make(chan struct{}),
	}
}

// Key queues a raw key press. It is decoded when its turn comes.
func (l *Loop) Key(k tea.KeyMsg) {
	l.enqueue(item{key: k, isKey: true})
}

// Send queues an event.
func (l *Loop) Send(ev Event) {
	l.enqueue(item{ev: ev})
}

func (l *Loop) enqueue(it item) {
	select {
	case l.queue <- it:
	case <-l.done:
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run handles items until the session quits or ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-l.queue:
			ev := it.ev
			if it.isKey {
				var ok bool
				l.s.Read(func(st *State) { ev, ok = l.decode(st, it.key) })
				if !ok {
					continue
				}
			}
			l.s.Update(ctx, ev)
			if l.notify != nil {
				l.notify()
			}
			if l.s.Quitting() {
				return nil
			}
		}
	}
}
