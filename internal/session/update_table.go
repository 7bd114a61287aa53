package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jask/rushcargo/internal/database/repository"
)

// cursor returns the index and length of a table, which must be the one
// shown on the current screen.
func cursor(st *State, t Table) (*int, int) {
	if st.Popup != PopupNone {
		logicError("table %d under popup %s", t, st.Popup)
	}
	switch {
	case t == TableLockers && st.Screen.Is(ScreenClient, ClientLockers):
		c := st.mustClient()
		return &c.Lockers.Index, len(c.Lockers.Lockers)
	case t == TablePackages && st.Screen.Is(ScreenClient, ClientLockerPackages):
		c := st.mustClient()
		return &c.Packages.Index, len(c.Packages.Viewing)
	case t == TableSentGuides && st.Screen.Is(ScreenClient, ClientSentPackages):
		c := st.mustClient()
		return &c.Guides.Index, len(c.Guides.Viewing)
	case t == TableBranchGuides && st.Screen.Is(ScreenPkgAdmin, PkgAdminGuides):
		a := st.mustPkgAdmin()
		return &a.Guides.Index, len(a.Guides.Viewing)
	}
	logicError("table %d on %s", t, st.Screen)
	return nil, 0
}

func (s *Session) updateTable(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case NextTableItem:
		s.locked(func(st *State) {
			if idx, n := cursor(st, ev.Table); n > 0 {
				*idx = (*idx + 1) % n
			}
		})
		return nil
	case PrevTableItem:
		s.locked(func(st *State) {
			if idx, n := cursor(st, ev.Table); n > 0 {
				*idx = (*idx - 1 + n) % n
			}
		})
		return nil
	case SelectTableItem:
		return s.selectTableItem(ctx, ev.Table)
	}
	logicError("event %T passed to the table handler", ev)
	return nil
}

func (s *Session) selectTableItem(ctx context.Context, t Table) error {
	var (
		empty  bool
		locker int64
		guide  repository.ShippingGuide
		c      *ClientUser
		a      *PkgAdminUser
		off    bool
	)
	s.locked(func(st *State) {
		idx, n := cursor(st, t)
		if n == 0 {
			empty = true
			return
		}
		switch t {
		case TableLockers:
			c = st.Client()
			locker = c.Lockers.Lockers[*idx].ID
		case TablePackages:
			c = st.Client()
			p := c.Packages.Viewing[*idx]
			c.Packages.toggle(p)
			c.Packages.Active = &p
		case TableSentGuides:
			c = st.Client()
			guide = c.Guides.Viewing[*idx]
			if act := c.Guides.Active; act != nil && act.Number == guide.Number {
				c.Guides.Active, c.Guides.ActivePayment = nil, nil
				off = true
			}
		case TableBranchGuides:
			a = st.PkgAdmin()
			guide = a.Guides.Viewing[*idx]
		}
	})
	if empty {
		return nil
	}

	switch t {
	case TableLockers:
		commit, err := s.prepareLockerPackages(ctx, c, locker)
		if err != nil {
			return err
		}
		s.locked(commit)
	case TableSentGuides:
		if off {
			return nil
		}
		var payment *repository.Payment
		p, err := s.deps.Store.Guides.PaymentByGuide(ctx, guide.Number)
		switch {
		case err == nil:
			payment = &p
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("load payment: %w", err)
		}
		s.locked(func(*State) {
			c.Guides.Active = &guide
			c.Guides.ActivePayment = payment
		})
	case TableBranchGuides:
		commit, err := s.prepareGuideInfo(ctx, a, guide.Number)
		if err != nil {
			return err
		}
		s.locked(commit)
	}
	return nil
}
