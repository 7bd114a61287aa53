package route

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jask/rushcargo/internal/logging/events"
)

// Client calls the route service over HTTP.
type Client struct {
	endpoint *Endpoint
	http     *http.Client
	timeout  time.Duration
}

func NewClient(endpoint *Endpoint, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{endpoint: endpoint, http: &http.Client{}, timeout: timeout}
}

func (c *Client) Shortest(ctx context.Context, fromWarehouse, toWarehouse int64) (Route, bool, error) {
	base := c.endpoint.URL()
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Route{}, false, fmt.Errorf("route: invalid service url %q", base)
	}
	q := u.Query()
	q.Set("fromId", strconv.FormatInt(fromWarehouse, 10))
	q.Set("toId", strconv.FormatInt(toWarehouse, 10))
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	events.Route.Request(u.String(), fromWarehouse, toWarehouse)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Route{}, false, fmt.Errorf("route: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Route{}, false, fmt.Errorf("route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		events.Route.NoRoute(resp.StatusCode)
		return Route{}, false, nil
	}

	var out Route
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Route{}, false, fmt.Errorf("route: decode response: %w", err)
	}
	events.Route.Found(out.Distance, len(out.Nodes))
	return out, true, nil
}
