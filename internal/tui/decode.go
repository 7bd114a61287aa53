package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rushcargo/internal/session"
)

// scopeFor names the key scope of the state: the open popup if any,
// otherwise the screen.
func scopeFor(st *session.State) string {
	switch st.Popup {
	case session.PopupNone:
	case session.ClientOrderMain:
		return scopeOrderMain
	case session.ClientOrderLocker:
		return scopeOrderLocker
	case session.ClientOrderBranch:
		return scopeOrderBranch
	case session.ClientOrderDelivery:
		return scopeOrderDelivery
	case session.ClientInputPayment:
		return scopePayment
	default:
		return scopeMessage
	}

	switch st.Screen.Kind {
	case session.ScreenTitle:
		return scopeTitle
	case session.ScreenLogin:
		return scopeLogin
	case session.ScreenSettings:
		return scopeSettings
	}
	switch st.Screen.Sub {
	case session.ClientMain:
		return scopeClientMain
	case session.ClientLockers:
		return scopeLockers
	case session.ClientLockerPackages:
		return scopeLockerPkgs
	case session.ClientSentPackages:
		return scopeSentPkgs
	case session.PkgAdminMain:
		return scopeAdminMain
	case session.PkgAdminGuides:
		return scopeGuides
	case session.PkgAdminGuideInfo:
		return scopeGuideInfo
	case session.PkgAdminAddPackage:
		return scopeAddPackage
	}
	return scopeGlobal
}

// backTarget is where Back leads from each screen.
var backTarget = map[string]session.Screen{
	scopeLogin:      session.TitleScreen(),
	scopeSettings:   session.TitleScreen(),
	scopeClientMain: session.TitleScreen(),
	scopeAdminMain:  session.TitleScreen(),
	scopeLockers:    session.ClientScreen(session.ClientMain),
	scopeSentPkgs:   session.ClientScreen(session.ClientMain),
	scopeLockerPkgs: session.ClientScreen(session.ClientLockers),
	scopeGuides:     session.PkgAdminScreen(session.PkgAdminMain),
	scopeGuideInfo:  session.PkgAdminScreen(session.PkgAdminGuides),
	scopeAddPackage: session.PkgAdminScreen(session.PkgAdminMain),
}

// inputFilter is the filter for the field being edited in a scope.
func inputFilter(scope string, st *session.State) session.Filter {
	field, _ := st.Mode.Field()
	switch scope {
	case scopeLogin:
		if field == 0 {
			return session.FilterNoSpace
		}
		return session.FilterNone
	case scopeSettings, scopePayment:
		return session.FilterNoSpace
	case scopeOrderLocker, scopeOrderBranch:
		return session.FilterNumeric
	case scopeAddPackage:
		switch {
		case st.Screen.Div == session.DivLeft && field == 0:
			return session.FilterMoney
		case st.Screen.Div == session.DivLeft:
			return session.FilterNone
		case field == 0:
			return session.FilterNoSpace
		default:
			return session.FilterNumeric
		}
	}
	return session.FilterNone
}

// Decoder turns key presses into session events using a key registry.
type Decoder struct {
	keys *KeyRegistry
}

func NewDecoder(keys *KeyRegistry) *Decoder {
	if keys == nil {
		keys = NewKeyRegistry()
	}
	return &Decoder{keys: keys}
}

// Decode maps k to an event for st. Keys with no binding are typed into
// the field being edited, if any, and dropped otherwise.
func (d *Decoder) Decode(st *session.State, k tea.KeyMsg) (session.Event, bool) {
	scope := scopeFor(st)
	b := d.keys.Lookup(k.String(), scope)
	if b == nil {
		if _, editing := st.Mode.Field(); editing {
			return session.KeyInput{Key: k, Filter: inputFilter(scope, st)}, true
		}
		return nil, false
	}
	return d.event(b.Action, scope, st)
}

func (d *Decoder) event(a Action, scope string, st *session.State) (session.Event, bool) {
	switch a {
	case actionQuit:
		return session.Quit{}, true
	case actionBack:
		target, ok := backTarget[scope]
		if !ok {
			return nil, false
		}
		return session.EnterScreen{Screen: target}, true
	case actionClose:
		return session.EnterPopup{Popup: session.PopupNone}, true
	case actionNextField:
		return session.SwitchInput{}, true
	case actionNextAction:
		return session.SwitchAction{}, true
	case actionRunAction:
		return session.SelectAction{}, true
	case actionSettingsSave:
		return session.SaveSettings{}, true
	case actionContinue:
		return session.EnterPopup{Popup: session.ClientInputPayment}, true
	case actionOrder:
		return session.EnterPopup{Popup: session.ClientOrderMain}, true
	case actionRoute:
		return session.TryGetRoute{}, true
	case actionUp, actionDown, actionSelect, actionToggle:
		return navEvent(a, scope)
	case actionSubmit:
		return submitEvent(scope, st)
	}
	return nil, false
}

func navEvent(a Action, scope string) (session.Event, bool) {
	if scope == scopeTitle {
		switch a {
		case actionUp:
			return session.PrevListItem{List: session.ListTitle}, true
		case actionDown:
			return session.NextListItem{List: session.ListTitle}, true
		case actionSelect:
			return session.SelectListItem{List: session.ListTitle}, true
		}
		return nil, false
	}

	var t session.Table
	switch scope {
	case scopeLockers:
		t = session.TableLockers
	case scopeLockerPkgs:
		t = session.TablePackages
	case scopeSentPkgs:
		t = session.TableSentGuides
	case scopeGuides:
		t = session.TableBranchGuides
	default:
		return nil, false
	}
	switch a {
	case actionUp:
		return session.PrevTableItem{Table: t}, true
	case actionDown:
		return session.NextTableItem{Table: t}, true
	}
	return session.SelectTableItem{Table: t}, true
}

func submitEvent(scope string, st *session.State) (session.Event, bool) {
	switch scope {
	case scopeLogin:
		return session.TryLogin{}, true
	case scopeOrderLocker:
		var username string
		if c := st.Client(); c != nil {
			username = c.Info.Username
		}
		return session.TryGetUserLocker{Username: username, LockerID: st.Input.Value(0)}, true
	case scopeOrderBranch:
		return session.TryGetUserBranch{BranchID: st.Input.Value(0)}, true
	case scopePayment:
		return session.TryPayment{}, true
	case scopeAddPackage:
		return session.TryAddPackage{}, true
	}
	return nil, false
}
