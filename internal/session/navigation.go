package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/logging/events"
	"github.com/jask/rushcargo/internal/route"
	"github.com/jask/rushcargo/internal/service"
)

// commit applies a prepared transition. It runs under the session lock and
// never fails.
type commit func(st *State)

// EnterScreen validates target, performs the fetches it needs and commits
// it. On error nothing changes.
func (s *Session) EnterScreen(ctx context.Context, target Screen) error {
	c, err := s.prepareScreen(ctx, target)
	if err != nil {
		events.Navigation.Rejected(target.String(), err)
		return err
	}
	s.locked(c)
	return nil
}

// EnterPopup is EnterScreen for the popup axis. PopupNone closes the open
// popup and always succeeds.
func (s *Session) EnterPopup(ctx context.Context, target Popup) error {
	c, err := s.preparePopup(ctx, target)
	if err != nil {
		events.Navigation.Rejected(target.String(), err)
		return err
	}
	s.locked(c)
	return nil
}

func (s *Session) prepareScreen(ctx context.Context, target Screen) (commit, error) {
	if !target.valid() {
		logicError("invalid screen %+v", target)
	}
	var (
		user    User
		current Screen
	)
	s.locked(func(st *State) {
		user = st.User
		current = st.Screen
	})

	switch target.Kind {
	case ScreenTitle:
		return func(st *State) {
			st.logout()
			st.enterScreen(target, ModeNormal, false)
			st.Title.Menu = 0
		}, nil
	case ScreenLogin:
		return func(st *State) {
			st.logout()
			st.enterScreen(target, Editing(0), false)
			st.Input.Fields[1].EchoMode = textinput.EchoPassword
			st.Input.Fields[1].EchoCharacter = '*'
		}, nil
	case ScreenSettings:
		var url string
		if s.deps.Endpoint != nil {
			url = s.deps.Endpoint.URL()
		}
		return func(st *State) {
			st.enterScreen(target, Editing(0), false)
			st.Input.SetValue(0, url)
		}, nil
	case ScreenClient:
		c, ok := user.(*ClientUser)
		if !ok {
			return nil, invalid(WrongRole)
		}
		return s.prepareClientScreen(ctx, c, target)
	case ScreenPkgAdmin:
		a, ok := user.(*PkgAdminUser)
		if !ok {
			return nil, invalid(WrongRole)
		}
		return s.preparePkgAdminScreen(ctx, a, current, target)
	}
	logicError("unhandled screen %s", target)
	return nil, nil
}

func (s *Session) prepareClientScreen(ctx context.Context, c *ClientUser, target Screen) (commit, error) {
	switch target.Sub {
	case ClientMain:
		return func(st *State) {
			st.enterScreen(target, ModeNormal, false)
		}, nil
	case ClientLockers:
		lockers, err := s.deps.Store.Lockers.LockersByClient(ctx, c.Info.Username)
		if err != nil {
			return nil, fmt.Errorf("load lockers: %w", err)
		}
		return func(st *State) {
			c.Lockers = LockerData{Lockers: lockers}
			c.Order = nil
			st.enterScreen(target, ModeNormal, false)
		}, nil
	case ClientLockerPackages:
		var active *repository.Locker
		s.locked(func(*State) { active = c.Lockers.Active })
		if active == nil {
			return nil, invalid(NothingSelected)
		}
		return s.prepareLockerPackages(ctx, c, active.ID)
	case ClientSentPackages:
		guides, err := s.deps.Store.Guides.GuidesBySender(ctx, c.Info.Username)
		if err != nil {
			return nil, fmt.Errorf("load sent packages: %w", err)
		}
		return func(st *State) {
			c.Guides = ShippingGuideData{Viewing: guides}
			st.enterScreen(target, ModeNormal, false)
		}, nil
	}
	logicError("unhandled client screen %s", target)
	return nil, nil
}

// prepareLockerPackages opens a locker: the locker row is required, its
// packages may be empty.
func (s *Session) prepareLockerPackages(ctx context.Context, c *ClientUser, lockerID int64) (commit, error) {
	locker, err := s.deps.Store.Lockers.LockerByID(ctx, lockerID)
	if err != nil {
		return nil, fmt.Errorf("load locker %d: %w", lockerID, err)
	}
	if locker.Client != c.Info.Username {
		return nil, invalid(InvalidUserLocker)
	}
	pkgs, err := s.deps.Store.Packages.PackagesByLocker(ctx, lockerID)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	return func(st *State) {
		c.Lockers.Active = &locker
		c.Packages = PackageData{Viewing: pkgs}
		c.Order = nil
		st.enterScreen(ClientScreen(ClientLockerPackages), ModeNormal, false)
	}, nil
}

func (s *Session) preparePkgAdminScreen(ctx context.Context, a *PkgAdminUser, current, target Screen) (commit, error) {
	switch target.Sub {
	case PkgAdminMain:
		return func(st *State) {
			st.enterScreen(target, ModeNormal, false)
		}, nil
	case PkgAdminGuides:
		guides, err := s.deps.Store.Guides.GuidesByBranch(ctx, a.Info.BranchID)
		if err != nil {
			return nil, fmt.Errorf("load guides: %w", err)
		}
		return func(st *State) {
			a.Guides = ShippingGuideData{Viewing: guides}
			st.enterScreen(target, ModeNormal, false)
		}, nil
	case PkgAdminGuideInfo:
		var number string
		s.locked(func(*State) {
			switch g := &a.Guides; {
			case g.Active != nil:
				number = g.Active.Number
			case g.Index >= 0 && g.Index < len(g.Viewing):
				number = g.Viewing[g.Index].Number
			}
		})
		if number == "" {
			return nil, invalid(NothingSelected)
		}
		return s.prepareGuideInfo(ctx, a, number)
	case PkgAdminAddPackage:
		if current.Is(ScreenPkgAdmin, PkgAdminAddPackage) {
			// Switching halves keeps the edit session.
			return func(st *State) {
				stashDraft(st, a)
				mode := st.Mode
				if _, editing := mode.Field(); editing {
					mode = Editing(0)
				}
				st.enterScreen(target, mode, true)
				loadDraft(st, a)
			}, nil
		}
		return func(st *State) {
			a.Draft = PackageDraft{}
			st.enterScreen(target, Editing(0), false)
		}, nil
	}
	logicError("unhandled package admin screen %s", target)
	return nil, nil
}

// prepareGuideInfo loads a guide, which must exist, plus its payment and
// packages, which may not.
func (s *Session) prepareGuideInfo(ctx context.Context, a *PkgAdminUser, number string) (commit, error) {
	g, err := s.deps.Store.Guides.GuideByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("load guide %s: %w", number, err)
	}
	var payment *repository.Payment
	p, err := s.deps.Store.Guides.PaymentByGuide(ctx, number)
	switch {
	case err == nil:
		payment = &p
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("load payment: %w", err)
	}
	pkgs, err := s.deps.Store.Packages.PackagesByGuide(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("load guide packages: %w", err)
	}
	return func(st *State) {
		a.Guides.Active = &g
		a.Guides.ActivePayment = payment
		a.Guides.ActivePackages = pkgs
		st.enterScreen(PkgAdminScreen(PkgAdminGuideInfo), ModeNormal, false)
	}, nil
}

func (s *Session) preparePopup(ctx context.Context, target Popup) (commit, error) {
	if target == PopupNone {
		return func(st *State) { st.closePopup() }, nil
	}

	var (
		screen   Screen
		current  Popup
		c        *ClientUser
		selected []repository.Package
		active   *repository.Locker
		order    *OrderDraft
	)
	s.locked(func(st *State) {
		screen = st.Screen
		current = st.Popup
		if c = st.Client(); c != nil {
			selected = c.Packages.Selected
			active = c.Lockers.Active
			order = c.Order
		}
	})
	if !PopupAllowed(screen, target) {
		return nil, fmt.Errorf("%s is not available on %s", target, screen)
	}

	switch target {
	case DisplayMsg, OrderSuccessful, FieldExcess:
		return func(st *State) { st.openPopup(target) }, nil
	case LoginSuccessful:
		return func(st *State) {
			st.openPopup(target)
			st.Counters[TimeoutLogin] = 0
		}, nil
	case ClientOrderMain, ClientOrderLocker, ClientOrderBranch:
		if len(selected) == 0 {
			return nil, invalid(NoPackagesSelected)
		}
		return func(st *State) {
			st.openPopup(target)
			if target != ClientOrderMain {
				st.Mode = Editing(0)
			}
		}, nil
	case ClientOrderDelivery:
		if len(selected) == 0 {
			return nil, invalid(NoPackagesSelected)
		}
		if len(selected) > service.DeliveryMaxPackages {
			return nil, &ValidationError{Kind: InvalidUserDelivery, Limit: service.DeliveryMaxPackages}
		}
		if active == nil {
			logicError("delivery order without an active locker")
		}
		b, err := s.deps.Store.Branches.DeliveryBranch(ctx, active.Warehouse.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid(NoCompatBranchDelivery)
		}
		if err != nil {
			return nil, fmt.Errorf("find delivery branch: %w", err)
		}
		return func(st *State) {
			c.Order = &OrderDraft{Kind: OrderDelivery, Branch: &b}
			st.openPopup(target)
			st.Counters[TimeoutGetUserDelivery] = 0
		}, nil
	case ClientInputPayment:
		// Locker and branch orders open payment from their own lookups;
		// only a pending delivery gets here.
		if current != ClientOrderDelivery || order == nil || order.Kind != OrderDelivery {
			return nil, fmt.Errorf("%s is only reached from %s", target, ClientOrderDelivery)
		}
		if len(selected) == 0 {
			return nil, invalid(NoPackagesSelected)
		}
		if len(selected) > service.DeliveryMaxPackages {
			return nil, &ValidationError{Kind: InvalidUserDelivery, Limit: service.DeliveryMaxPackages}
		}
		return s.preparePayment(c, *order, selected), nil
	}
	logicError("unhandled popup %s", target)
	return nil, nil
}

// preparePayment quotes the order and opens the payment popup.
func (s *Session) preparePayment(c *ClientUser, order OrderDraft, selected []repository.Package) commit {
	amount := service.Quote(selected, order.Kind == OrderDelivery)
	return func(st *State) {
		order.Payment = &PaymentData{Amount: amount, Bank: BankPayPal}
		c.Order = &order
		st.openPopup(ClientInputPayment)
		st.Mode = Editing(0)
		st.Action = int(BankPayPal)
	}
}

// fetchRoute resolves both branches, asks the route service for the
// warehouse path and adds each branch's connector distance. ok is false
// when the service has no route.
func (s *Session) fetchRoute(ctx context.Context, fromBranch, toBranch int64) (nodes []route.Node, distance int64, ok bool, err error) {
	from, err := s.branch(ctx, fromBranch)
	if err != nil {
		return nil, 0, false, err
	}
	to, err := s.branch(ctx, toBranch)
	if err != nil {
		return nil, 0, false, err
	}
	r, ok, err := s.deps.Planner.Shortest(ctx, from.WarehouseID, to.WarehouseID)
	if err != nil || !ok {
		return nil, 0, false, err
	}
	return r.Nodes, r.Distance + from.RouteDistance + to.RouteDistance, true, nil
}

func (s *Session) branch(ctx context.Context, id int64) (repository.Branch, error) {
	b, err := s.deps.Store.Branches.BranchByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return b, invalid(InvalidUserBranch)
	}
	if err != nil {
		return b, fmt.Errorf("load branch %d: %w", id, err)
	}
	return b, nil
}

// stashDraft copies the visible half of the add-package form into the draft.
func stashDraft(st *State, a *PkgAdminUser) {
	d := &a.Draft
	if st.Screen.Div == DivLeft {
		d.Weight = st.Input.Value(0)
		d.Content = st.Input.Value(1)
		return
	}
	d.Recipient = st.Input.Value(0)
	if b := st.Input.Value(1); b != d.Branch {
		d.Branch = b
		d.clearRoute()
	}
}

// loadDraft fills the inputs from the draft for the visible half.
func loadDraft(st *State, a *PkgAdminUser) {
	st.Input.Reset()
	if st.Screen.Div == DivLeft {
		st.Input.SetValue(0, a.Draft.Weight)
		st.Input.SetValue(1, a.Draft.Content)
		return
	}
	st.Input.SetValue(0, a.Draft.Recipient)
	st.Input.SetValue(1, a.Draft.Branch)
}
