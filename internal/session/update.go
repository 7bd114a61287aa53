package session

import (
	"context"
	"errors"

	"github.com/jask/rushcargo/internal/logging/events"
)

// Update applies one event to the session. Validation and I/O failures
// end up in a message popup; an event the current state has no handling
// for panics.
func (s *Session) Update(ctx context.Context, ev Event) {
	if err := s.dispatch(ctx, ev); err != nil {
		s.fail(err)
	}
}

func (s *Session) dispatch(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case Quit, TimeoutTick, EnterScreen, EnterPopup, SwitchInput, SwitchAction,
		SelectAction, KeyInput, TryGetUserLocker:
		return s.updateCommon(ctx, ev)
	case NextListItem, PrevListItem, SelectListItem:
		return s.updateList(ctx, ev)
	case NextTableItem, PrevTableItem, SelectTableItem:
		return s.updateTable(ctx, ev)
	case TryLogin:
		return s.updateLogin(ctx)
	case TryGetUserBranch, TryPayment:
		return s.updateClient(ctx, ev)
	case TryGetRoute, TryAddPackage:
		return s.updatePkgAdmin(ctx, ev)
	case SaveSettings:
		return s.updateSettings(ctx)
	case Resize:
		return nil
	}
	logicError("event %T has no handler", ev)
	return nil
}

func (s *Session) fail(err error) {
	var (
		ve     *ValidationError
		excess *fieldExcessError
	)
	popup := DisplayMsg
	switch {
	case errors.As(err, &excess):
		popup = FieldExcess
		events.Session.Rejected(err)
	case errors.As(err, &ve):
		events.Session.Rejected(err)
	default:
		events.Session.Failed(err)
	}
	s.locked(func(st *State) { st.showMessage(popup, err.Error()) })
}
