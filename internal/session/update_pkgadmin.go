package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/rushcargo/internal/route"
	"github.com/jask/rushcargo/internal/service"
)

func (s *Session) updatePkgAdmin(ctx context.Context, ev Event) error {
	switch ev.(type) {
	case TryGetRoute:
		return s.tryGetRoute(ctx)
	case TryAddPackage:
		return s.tryAddPackage(ctx)
	}
	logicError("event %T passed to the package admin handler", ev)
	return nil
}

// draftInputs stashes the visible form half and returns a copy of the
// draft with the admin's home branch.
func (s *Session) draftInputs() (*PkgAdminUser, PackageDraft) {
	var (
		a     *PkgAdminUser
		draft PackageDraft
	)
	s.locked(func(st *State) {
		if !st.Screen.Is(ScreenPkgAdmin, PkgAdminAddPackage) || st.Popup != PopupNone {
			logicError("package form event on %s/%s", st.Screen, st.Popup)
		}
		a = st.mustPkgAdmin()
		stashDraft(st, a)
		draft = a.Draft
	})
	return a, draft
}

func parseBranch(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if err := checkLen("destination branch", raw, maxID); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidInput("destination branch", "enter the branch number")
	}
	return id, nil
}

// tryGetRoute looks up the route from the admin's branch to the draft's
// destination. Only a found route is committed; any other outcome drops
// the route the draft held.
func (s *Session) tryGetRoute(ctx context.Context) error {
	a, draft := s.draftInputs()
	nodes, distance, to, err := s.lookupRoute(ctx, a.Info.BranchID, draft.Branch)
	if err != nil {
		s.locked(func(*State) { a.Draft.clearRoute() })
		return err
	}
	s.locked(func(*State) {
		a.Draft.Route = nodes
		a.Draft.RouteDistance = &distance
		a.Draft.RouteBranch = to
	})
	return nil
}

func (s *Session) lookupRoute(ctx context.Context, from int64, rawBranch string) ([]route.Node, int64, int64, error) {
	to, err := parseBranch(rawBranch)
	if err != nil {
		return nil, 0, 0, err
	}
	nodes, distance, ok, err := s.fetchRoute(ctx, from, to)
	if err != nil {
		return nil, 0, 0, err
	}
	if !ok {
		return nil, 0, 0, invalid(MissingRoute)
	}
	return nodes, distance, to, nil
}

func (s *Session) tryAddPackage(ctx context.Context) error {
	a, d := s.draftInputs()

	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"weight", d.Weight, maxWeight},
		{"content", d.Content, maxContent},
		{"recipient", d.Recipient, maxUsername},
	} {
		if err := checkLen(f.name, strings.TrimSpace(f.value), f.max); err != nil {
			return err
		}
	}
	weight, err := decimal.NewFromString(strings.TrimSpace(d.Weight))
	if err != nil || !weight.IsPositive() {
		return invalidInput("weight", "enter the weight in kg")
	}
	if strings.TrimSpace(d.Content) == "" {
		return invalidInput("content", "describe the package")
	}
	if strings.TrimSpace(d.Recipient) == "" {
		return invalidInput("recipient", "enter the recipient's username")
	}
	to, err := parseBranch(d.Branch)
	if err != nil {
		return err
	}
	if d.RouteDistance == nil || d.RouteBranch != to {
		return &ValidationError{Kind: MissingRoute, Detail: "look up the route before registering the package"}
	}

	rec, err := s.deps.Intake.Register(ctx, service.Intake{
		FromBranch:    a.Info.BranchID,
		ToBranch:      to,
		Recipient:     d.Recipient,
		Weight:        weight,
		Content:       d.Content,
		RouteDistance: *d.RouteDistance,
	})
	var unknown *service.UnknownRecipientError
	if errors.As(err, &unknown) {
		return &ValidationError{Kind: UnknownRecipient, Detail: unknown.Name, Suggestion: unknown.Suggestion}
	}
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Package %s registered on guide %s, %d km to branch %d.",
		rec.TrackingNumber, rec.GuideNumber, *d.RouteDistance, to)
	s.locked(func(st *State) {
		a.Draft = PackageDraft{}
		st.enterScreen(AddPackageScreen(DivLeft), Editing(0), false)
		st.showMessage(OrderSuccessful, msg)
	})
	return nil
}
