package events

import "github.com/jask/rushcargo/internal/logging"

type NavigationTracer struct{}

var Navigation = NavigationTracer{}

func (NavigationTracer) Screen(from, to string) {
	logging.L().Debug("nav.screen", "from", from, "to", to)
}

func (NavigationTracer) Popup(screen, from, to string) {
	logging.L().Debug("nav.popup", "screen", screen, "from", from, "to", to)
}

func (NavigationTracer) Rejected(target string, err error) {
	logging.L().Info("nav.rejected", "target", target, "error", err)
}

func (NavigationTracer) Undefined(event, screen, popup string) {
	logging.L().Debug("nav.action.undefined", "event", event, "screen", screen, "popup", popup)
}
