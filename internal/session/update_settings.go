package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// updateSettings validates and applies the route service URL, then
// returns to the title screen.
func (s *Session) updateSettings(ctx context.Context) error {
	var raw string
	s.locked(func(st *State) {
		if st.Screen.Kind != ScreenSettings || st.Popup != PopupNone {
			logicError("save settings on %s/%s", st.Screen, st.Popup)
		}
		raw = strings.TrimSpace(st.Input.Value(0))
	})
	if err := checkLen("route service url", raw, maxURL); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalidInput("route service url", "expected http(s)://host/path")
	}
	if s.deps.SaveRoute != nil {
		if err := s.deps.SaveRoute(raw); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	if s.deps.Endpoint != nil {
		s.deps.Endpoint.Set(raw)
	}

	title, err := s.prepareScreen(ctx, TitleScreen())
	if err != nil {
		return err
	}
	s.locked(func(st *State) {
		title(st)
		st.showMessage(DisplayMsg, "Route service set to "+raw)
	})
	return nil
}
