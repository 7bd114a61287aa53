package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/service"
)

func (s *Session) updateClient(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case TryGetUserBranch:
		return s.tryGetUserBranch(ctx, ev.BranchID)
	case TryPayment:
		return s.tryPayment(ctx)
	}
	logicError("event %T passed to the client handler", ev)
	return nil
}

func (s *Session) tryGetUserBranch(ctx context.Context, raw string) error {
	var (
		c        *ClientUser
		selected []repository.Package
	)
	s.locked(func(st *State) {
		if !st.Screen.Is(ScreenClient, ClientLockerPackages) || st.Popup != ClientOrderBranch {
			logicError("branch lookup on %s/%s", st.Screen, st.Popup)
		}
		c = st.mustClient()
		selected = c.Packages.Selected
	})

	raw = strings.TrimSpace(raw)
	if err := checkLen("branch id", raw, maxID); err != nil {
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return invalidInput("branch id", "enter the branch number")
	}
	b, err := s.branch(ctx, id)
	if err != nil {
		return err
	}
	s.locked(s.preparePayment(c, OrderDraft{Kind: OrderToBranch, Branch: &b}, selected))
	return nil
}

// tryPayment places the order, refreshes the locker and reports the guide.
func (s *Session) tryPayment(ctx context.Context) error {
	var (
		c        *ClientUser
		draft    OrderDraft
		selected []repository.Package
		active   repository.Locker
		txID     string
		bank     Bank
	)
	s.locked(func(st *State) {
		if !st.Screen.Is(ScreenClient, ClientLockerPackages) || st.Popup != ClientInputPayment {
			logicError("payment on %s/%s", st.Screen, st.Popup)
		}
		c = st.mustClient()
		if c.Order == nil || c.Order.Payment == nil || c.Lockers.Active == nil {
			logicError("payment without an order")
		}
		draft = *c.Order
		selected = c.Packages.Selected
		active = *c.Lockers.Active
		txID = strings.TrimSpace(st.Input.Value(0))
		if st.Action >= 0 && st.Action < int(bankCount) {
			bank = Bank(st.Action)
		}
	})

	if txID == "" {
		return invalidInput("transaction id", "required")
	}
	if err := checkLen("transaction id", txID, maxTransactionID); err != nil {
		return err
	}

	o := service.Order{
		Sender:        c.Info.Username,
		FromLocker:    active.ID,
		Packages:      selected,
		Amount:        draft.Payment.Amount,
		Bank:          bank.String(),
		TransactionID: txID,
	}
	switch draft.Kind {
	case OrderToLocker:
		o.ToLocker = &draft.Locker.ID
	case OrderToBranch:
		o.ToBranch = &draft.Branch.ID
	case OrderDelivery:
		o.Delivery = &draft.Branch.ID
	}
	g, err := s.deps.Orders.Place(ctx, o)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Guide %s issued for %d package(s). Paid %s with %s.",
		g.Number, len(selected), draft.Payment.Amount.StringFixed(2), bank)
	refresh, err := s.prepareLockerPackages(ctx, c, active.ID)
	if err != nil {
		// The order is placed; only the table is stale.
		msg += " Refresh failed: " + err.Error()
		refresh = func(st *State) {
			c.Packages.Selected = nil
			c.Order = nil
		}
	}
	s.locked(func(st *State) {
		refresh(st)
		st.showMessage(OrderSuccessful, msg)
	})
	return nil
}
