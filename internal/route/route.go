package route

import "context"

// Planner finds the shortest warehouse path between two warehouses.
type Planner interface {
	// Shortest reports ok=false when the service answers with a
	// non-success status; err is reserved for transport and decode failures.
	Shortest(ctx context.Context, fromWarehouse, toWarehouse int64) (Route, bool, error)
}

// Node is one warehouse on a route.
type Node struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Region   string `json:"region"`
}

// Route is the route service's answer. Distance covers warehouse hops only.
type Route struct {
	Distance int64  `json:"distance"`
	Nodes    []Node `json:"nodes"`
}
