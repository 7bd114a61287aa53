package route

import (
	"strings"
	"sync"

	"github.com/jask/rushcargo/internal/logging/events"
)

// Endpoint holds the route service base URL. It is read on every request and
// replaced by the settings screen or a config file reload.
type Endpoint struct {
	mu  sync.RWMutex
	url string
}

func NewEndpoint(url string) *Endpoint {
	return &Endpoint{url: strings.TrimSpace(url)}
}

func (e *Endpoint) URL() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.url
}

func (e *Endpoint) Set(url string) {
	url = strings.TrimSpace(url)
	e.mu.Lock()
	changed := e.url != url
	e.url = url
	e.mu.Unlock()
	if changed {
		events.Route.EndpointChanged(url)
	}
}
