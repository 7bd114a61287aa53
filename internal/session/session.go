package session

import (
	"sync"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/route"
	"github.com/jask/rushcargo/internal/service"
)

// Deps are the collaborators a session calls out to.
type Deps struct {
	Store    *repository.Store
	Planner  route.Planner
	Endpoint *route.Endpoint
	Auth     *service.AuthService
	Orders   *service.OrderService
	Intake   *service.IntakeService
	// SaveRoute persists a new route service URL. Optional.
	SaveRoute func(url string) error
}

// Options tune timer expiries.
type Options struct {
	LoginTicks    uint8
	DeliveryTicks uint8
}

// Session owns the state aggregate and the single lock guarding it. Only
// the loop goroutine mutates it; readers go through Read.
type Session struct {
	mu   sync.Mutex
	st   State
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Session {
	if opts.LoginTicks == 0 {
		opts.LoginTicks = 2
	}
	if opts.DeliveryTicks == 0 {
		opts.DeliveryTicks = 3
	}
	if deps.Store != nil {
		if deps.Auth == nil {
			deps.Auth = &service.AuthService{Users: deps.Store.Users}
		}
		if deps.Orders == nil {
			deps.Orders = &service.OrderService{Guides: deps.Store.Guides}
		}
		if deps.Intake == nil {
			deps.Intake = &service.IntakeService{Users: deps.Store.Users, Guides: deps.Store.Guides}
		}
	}
	return &Session{st: NewState(), deps: deps, opts: opts}
}

// Read runs fn with the state under the lock. fn must not modify it.
func (s *Session) Read(fn func(st *State)) {
	s.locked(fn)
}

func (s *Session) locked(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}

// Quitting reports whether a Quit event has been handled.
func (s *Session) Quitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Quit
}
