package session

import "context"

func (s *Session) updateList(ctx context.Context, ev Event) error {
	var next func() error
	s.locked(func(st *State) {
		switch ev := ev.(type) {
		case NextListItem:
			requireTitle(st, ev.List)
			st.Title.Menu = (st.Title.Menu + 1) % len(TitleMenu)
		case PrevListItem:
			requireTitle(st, ev.List)
			st.Title.Menu = (st.Title.Menu - 1 + len(TitleMenu)) % len(TitleMenu)
		case SelectListItem:
			requireTitle(st, ev.List)
			switch st.Title.Menu {
			case 0:
				next = s.screenFn(ctx, LoginScreen())
			case 1:
				next = s.screenFn(ctx, SettingsScreen())
			case 2:
				next = func() error { return s.updateCommon(ctx, Quit{}) }
			}
		default:
			logicError("event %T passed to the list handler", ev)
		}
	})
	if next == nil {
		return nil
	}
	return next()
}

func requireTitle(st *State, l List) {
	if l != ListTitle || st.Screen.Kind != ScreenTitle || st.Popup != PopupNone {
		logicError("list %d on %s/%s", l, st.Screen, st.Popup)
	}
}
