package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jask/rushcargo/internal/logging/events"
	"github.com/jask/rushcargo/internal/service"
)

func (s *Session) updateLogin(ctx context.Context) error {
	var username, password string
	s.locked(func(st *State) {
		if st.Screen.Kind != ScreenLogin || st.Popup != PopupNone {
			logicError("login on %s/%s", st.Screen, st.Popup)
		}
		username = st.Input.Value(0)
		password = st.Input.Value(1)
	})
	if err := checkLen("username", username, maxUsername); err != nil {
		return err
	}
	if err := checkLen("password", password, maxPassword); err != nil {
		return err
	}

	acct, err := s.deps.Auth.Login(ctx, username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		events.Session.LoginFailed(username)
		return err
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var (
		user User
		main Screen
	)
	switch {
	case acct.Client != nil:
		user = &ClientUser{Info: *acct.Client}
		main = ClientScreen(ClientMain)
	case acct.PkgAdmin != nil:
		user = &PkgAdminUser{Info: *acct.PkgAdmin}
		main = PkgAdminScreen(PkgAdminMain)
	default:
		logicError("login returned no account for %q", username)
	}
	events.Session.Login(user.Username(), user.Role())

	s.locked(func(st *State) {
		st.User = user
		st.enterScreen(main, ModeNormal, false)
		st.openPopup(LoginSuccessful)
		st.Counters[TimeoutLogin] = 0
	})
	return nil
}
