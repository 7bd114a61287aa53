package session

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const shortestBody = `{"distance":100,"nodes":[
	{"id":1,"building":"Central Depot","city":"Caracas","country":"Venezuela","region":"Capital"},
	{"id":2,"building":"North Yard","city":"Valencia","country":"Venezuela","region":"Carabobo"}]}`

// fillPackageForm opens the add-package form and fills both halves.
func (h *harness) fillPackageForm(recipient, branch string) {
	h.t.Helper()
	h.login("admin")
	h.send(SwitchAction{}, SwitchAction{}, SelectAction{})
	st := h.state()
	require.Equal(h.t, AddPackageScreen(DivLeft), st.Screen)
	require.Equal(h.t, Editing(0), st.Mode)

	h.typeText("2.5", FilterMoney)
	h.send(SwitchInput{})
	h.typeText("Desk lamp", FilterNone)

	h.send(SwitchAction{}, SwitchAction{}, SelectAction{})
	st = h.state()
	require.Equal(h.t, AddPackageScreen(DivRight), st.Screen)
	require.Equal(h.t, Editing(0), st.Mode)
	require.Empty(h.t, st.Input.Value(0))

	h.typeText(recipient, FilterNoSpace)
	h.send(SwitchInput{})
	h.typeText(branch, FilterNumeric)
}

func TestRouteDistanceAddsConnectors(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carla", "2")
	h.send(TryGetRoute{})

	st := h.state()
	require.Equal(t, PopupNone, st.Popup, st.Message)
	d := st.PkgAdmin().Draft
	require.NotNil(t, d.RouteDistance)
	// Branch 1 sits 5 from its warehouse and branch 2 sits 7 from its own.
	require.Equal(t, int64(112), *d.RouteDistance)
	require.Len(t, d.Route, 2)
	require.Equal(t, "North Yard", d.Route[1].Building)
	require.Equal(t, int64(2), d.RouteBranch)
}

func TestRouteMissingLeavesDraft(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusNotFound, `{"error":"no path"}`)
	h.fillPackageForm("carla", "3")
	h.send(TryGetRoute{})

	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(MissingRoute).Error(), st.Message)
	d := st.PkgAdmin().Draft
	require.Nil(t, d.Route)
	require.Nil(t, d.RouteDistance)
}

func TestRouteUnknownBranch(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carla", "77")
	h.send(TryGetRoute{})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(InvalidUserBranch).Error(), st.Message)
}

func TestDivSwitchKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carla", "2")
	h.send(TryGetRoute{})

	h.send(SwitchAction{}, SelectAction{})
	st := h.state()
	require.Equal(t, AddPackageScreen(DivLeft), st.Screen)
	require.Equal(t, "2.5", st.Input.Value(0))
	require.Equal(t, "Desk lamp", st.Input.Value(1))
	require.NotNil(t, st.PkgAdmin().Draft.RouteDistance)

	h.send(SwitchAction{}, SwitchAction{}, SelectAction{})
	st = h.state()
	require.Equal(t, "carla", st.Input.Value(0))
	require.Equal(t, "2", st.Input.Value(1))

	// Editing the branch drops the route on the next stash.
	h.send(SwitchInput{})
	h.typeText("3", FilterNumeric)
	h.send(SwitchAction{}, SwitchAction{}, SelectAction{})
	d := h.state().PkgAdmin().Draft
	require.Equal(t, "23", d.Branch)
	require.Nil(t, d.RouteDistance)
}

func TestAddPackage(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carla", "2")

	h.send(TryAddPackage{})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup, "route lookup comes first")
	require.Contains(t, st.Message, "look up the route")

	h.send(EnterPopup{Popup: PopupNone}, TryGetRoute{}, TryAddPackage{})
	st = h.state()
	require.Equal(t, OrderSuccessful, st.Popup, st.Message)
	require.Contains(t, st.Message, "112 km")
	require.Equal(t, AddPackageScreen(DivLeft), st.Screen)
	require.Equal(t, PackageDraft{}, st.PkgAdmin().Draft)

	h.send(EnterPopup{Popup: PopupNone})
	st = h.state()
	require.Equal(t, Editing(0), st.Mode)
	require.Empty(t, st.Input.Value(0))

	guides, err := h.store.Guides.GuidesByBranch(h.ctx, 1)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	require.Equal(t, "carla", guides[0].Recipient)
	require.Equal(t, int64(112), *guides[0].RouteDistance)

	h.send(EnterScreen{Screen: PkgAdminScreen(PkgAdminGuides)}, SelectTableItem{Table: TableBranchGuides})
	st = h.state()
	require.Equal(t, PkgAdminScreen(PkgAdminGuideInfo), st.Screen)
	require.Len(t, st.PkgAdmin().Guides.ActivePackages, 1)
	require.Nil(t, st.PkgAdmin().Guides.ActivePayment)
}

func TestAddPackageUnknownRecipient(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carl", "2")
	h.send(TryGetRoute{}, TryAddPackage{})

	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Contains(t, st.Message, `did you mean "carla"`)
	require.Equal(t, "carl", st.PkgAdmin().Draft.Recipient, "the draft survives")
}

func TestRefusedRouteDropsEarlierRoute(t *testing.T) {
	h := newHarness(t)
	h.routeServer(http.StatusOK, shortestBody)
	h.fillPackageForm("carla", "2")
	h.send(TryGetRoute{})
	require.NotNil(t, h.state().PkgAdmin().Draft.RouteDistance)

	h.routeServer(http.StatusNotFound, `{"error":"no path"}`)
	h.send(TryGetRoute{})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(MissingRoute).Error(), st.Message)
	d := st.PkgAdmin().Draft
	require.Nil(t, d.Route)
	require.Nil(t, d.RouteDistance)
	require.Zero(t, d.RouteBranch)

	h.send(EnterPopup{Popup: PopupNone}, TryAddPackage{})
	st = h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Contains(t, st.Message, "look up the route")

	guides, err := h.store.Guides.GuidesByBranch(h.ctx, 1)
	require.NoError(t, err)
	require.Empty(t, guides)
}
