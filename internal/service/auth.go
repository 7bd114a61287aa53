package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jask/rushcargo/internal/auth"
	"github.com/jask/rushcargo/internal/database/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Account is the result of a successful login: exactly one field is set.
type Account struct {
	Client   *repository.Client
	PkgAdmin *repository.PkgAdmin
}

// AuthService checks credentials against client and admin accounts.
type AuthService struct {
	Users *repository.UserRepo
}

// Login looks the username up as a client first, then as a package admin.
func (s *AuthService) Login(ctx context.Context, username, password string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}

	c, err := s.Users.ClientByUsername(ctx, username)
	switch {
	case err == nil:
		if err := check(password, c.PasswordHash); err != nil {
			return Account{}, err
		}
		return Account{Client: &c}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return Account{}, fmt.Errorf("lookup client: %w", err)
	}

	a, err := s.Users.PkgAdminByUsername(ctx, username)
	switch {
	case err == nil:
		if err := check(password, a.PasswordHash); err != nil {
			return Account{}, err
		}
		return Account{PkgAdmin: &a}, nil
	case errors.Is(err, repository.ErrNotFound):
		return Account{}, ErrInvalidCredentials
	default:
		return Account{}, fmt.Errorf("lookup admin: %w", err)
	}
}

func check(password, hash string) error {
	err := auth.Verify(password, hash)
	if errors.Is(err, auth.ErrMismatch) {
		return ErrInvalidCredentials
	}
	return err
}
