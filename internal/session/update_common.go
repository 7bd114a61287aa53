package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/logging/events"
	"github.com/jask/rushcargo/internal/service"
)

func (s *Session) updateCommon(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case Quit:
		s.locked(func(st *State) {
			st.logout()
			st.Quit = true
		})
		events.Session.Quit()
		return nil
	case TimeoutTick:
		return s.timeoutTick(ctx, ev.Type)
	case EnterScreen:
		return s.EnterScreen(ctx, ev.Screen)
	case EnterPopup:
		return s.EnterPopup(ctx, ev.Popup)
	case SwitchInput:
		s.locked(func(st *State) {
			if f, ok := st.Mode.Field(); ok {
				st.Mode = Editing(1 - f)
			}
		})
		return nil
	case SwitchAction:
		s.locked(switchAction)
		return nil
	case SelectAction:
		return s.selectAction(ctx)
	case KeyInput:
		s.locked(func(st *State) { keyInput(st, ev) })
		return nil
	case TryGetUserLocker:
		return s.tryGetUserLocker(ctx, ev)
	}
	logicError("event %T passed to the common handler", ev)
	return nil
}

func (s *Session) timeoutTick(ctx context.Context, t TimeoutType) error {
	var advance bool
	s.locked(func(st *State) {
		switch t {
		case TimeoutResize:
		case TimeoutCubeTick:
			if st.Screen.Kind == ScreenTitle {
				st.Title.Cube.Tick()
			}
		case TimeoutLogin:
			if st.Popup != LoginSuccessful {
				st.Counters[t] = 0
				return
			}
			if st.Counters[t]++; st.Counters[t] >= s.opts.LoginTicks {
				st.Counters[t] = 0
				st.closePopup()
			}
		case TimeoutGetUserDelivery:
			if st.Popup != ClientOrderDelivery {
				st.Counters[t] = 0
				return
			}
			if st.Counters[t]++; st.Counters[t] >= s.opts.DeliveryTicks {
				st.Counters[t] = 0
				advance = true
			}
		default:
			logicError("unknown timeout %d", t)
		}
	})
	if advance {
		return s.EnterPopup(ctx, ClientInputPayment)
	}
	return nil
}

// actionCount is the number of actions offered on the current
// (screen, subscreen, popup) triple.
func actionCount(st *State) (int, bool) {
	switch {
	case st.Screen.Is(ScreenClient, ClientMain) && st.Popup == PopupNone:
		return 2, true
	case st.Screen.Is(ScreenClient, ClientLockerPackages) && st.Popup == ClientOrderMain:
		return 3, true
	case st.Screen.Is(ScreenClient, ClientLockerPackages) && st.Popup == ClientInputPayment:
		return int(bankCount), true
	case st.Screen.Is(ScreenPkgAdmin, PkgAdminMain) && st.Popup == PopupNone:
		return 2, true
	case st.Screen.Is(ScreenPkgAdmin, PkgAdminAddPackage) && st.Popup == PopupNone:
		return 2, true
	}
	return 0, false
}

func switchAction(st *State) {
	n, ok := actionCount(st)
	if !ok {
		events.Navigation.Undefined("SwitchAction", st.Screen.String(), st.Popup.String())
		return
	}
	if st.Action < 0 || st.Action >= n-1 {
		st.Action = 0
		return
	}
	st.Action++
}

func (s *Session) selectAction(ctx context.Context) error {
	var next func() error
	s.locked(func(st *State) {
		idx := st.Action
		switch {
		case st.Screen.Is(ScreenClient, ClientMain) && st.Popup == PopupNone:
			switch idx {
			case 0:
				next = s.screenFn(ctx, ClientScreen(ClientLockers))
			case 1:
				next = s.screenFn(ctx, ClientScreen(ClientSentPackages))
			}
		case st.Screen.Is(ScreenClient, ClientLockerPackages) && st.Popup == ClientOrderMain:
			switch idx {
			case 0:
				next = s.popupFn(ctx, ClientOrderLocker)
			case 1:
				next = s.popupFn(ctx, ClientOrderBranch)
			case 2:
				next = s.popupFn(ctx, ClientOrderDelivery)
			}
		case st.Screen.Is(ScreenPkgAdmin, PkgAdminMain) && st.Popup == PopupNone:
			switch idx {
			case 0:
				next = s.screenFn(ctx, PkgAdminScreen(PkgAdminGuides))
			case 1:
				next = s.screenFn(ctx, AddPackageScreen(DivLeft))
			}
		case st.Screen.Is(ScreenPkgAdmin, PkgAdminAddPackage) && st.Popup == PopupNone:
			switch idx {
			case 0:
				next = s.screenFn(ctx, AddPackageScreen(DivLeft))
			case 1:
				next = s.screenFn(ctx, AddPackageScreen(DivRight))
			}
		default:
			events.Navigation.Undefined("SelectAction", st.Screen.String(), st.Popup.String())
		}
	})
	if next == nil {
		return nil
	}
	return next()
}

func (s *Session) screenFn(ctx context.Context, target Screen) func() error {
	return func() error { return s.EnterScreen(ctx, target) }
}

func (s *Session) popupFn(ctx context.Context, target Popup) func() error {
	return func() error { return s.EnterPopup(ctx, target) }
}

// keyInput feeds a key to the field being edited. Printable characters
// pass through the filter one at a time; a rejected one is dropped.
func keyInput(st *State, ev KeyInput) {
	field, ok := st.Mode.Field()
	if !ok {
		logicError("key input on %s while not editing", st.Screen)
	}
	in := &st.Input.Fields[field]
	if ev.Key.Type != tea.KeyRunes && ev.Key.Type != tea.KeySpace {
		*in, _ = in.Update(ev.Key)
		return
	}
	runes := ev.Key.Runes
	if ev.Key.Type == tea.KeySpace {
		runes = []rune{' '}
	}
	for _, r := range runes {
		if !ev.Filter.Allows(in.Value(), in.Position(), r) {
			continue
		}
		*in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// tryGetUserLocker checks a destination locker for the selected packages
// and moves on to payment.
func (s *Session) tryGetUserLocker(ctx context.Context, ev TryGetUserLocker) error {
	var (
		c        *ClientUser
		selected []repository.Package
		active   *repository.Locker
	)
	s.locked(func(st *State) {
		if !st.Screen.Is(ScreenClient, ClientLockerPackages) || st.Popup != ClientOrderLocker {
			logicError("locker lookup on %s/%s", st.Screen, st.Popup)
		}
		c = st.mustClient()
		selected = c.Packages.Selected
		active = c.Lockers.Active
	})

	raw := strings.TrimSpace(ev.LockerID)
	if err := checkLen("locker id", raw, maxID); err != nil {
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return invalidInput("locker id", "enter the locker number")
	}
	l, err := s.deps.Store.Lockers.LockerByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid(InvalidUserLocker)
	}
	if err != nil {
		return fmt.Errorf("load locker %d: %w", id, err)
	}
	if l.Client != ev.Username {
		return invalid(InvalidUserLocker)
	}
	if active != nil && l.ID == active.ID {
		return invalid(LockerSameAsActive)
	}
	tooMany, excess := service.LockerCapacity(l, selected)
	if tooMany {
		return invalid(LockerTooManyPackages)
	}
	if excess.IsPositive() {
		return &ValidationError{Kind: LockerWeightTooBig, Excess: excess}
	}

	s.locked(s.preparePayment(c, OrderDraft{Kind: OrderToLocker, Locker: &l}, selected))
	return nil
}
