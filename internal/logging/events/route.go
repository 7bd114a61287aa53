package events

import "github.com/jask/rushcargo/internal/logging"

type RouteTracer struct{}

var Route = RouteTracer{}

func (RouteTracer) Request(url string, from, to int64) {
	logging.L().Debug("route.request", "url", url, "from_warehouse", from, "to_warehouse", to)
}

func (RouteTracer) NoRoute(status int) {
	logging.L().Info("route.none", "status", status)
}

func (RouteTracer) Found(distance int64, nodes int) {
	logging.L().Debug("route.found", "distance", distance, "nodes", nodes)
}

func (RouteTracer) EndpointChanged(url string) {
	logging.L().Info("route.endpoint", "url", url)
}
