package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/service"
)

func TestLoginClient(t *testing.T) {
	h := newHarness(t)
	h.send(EnterScreen{Screen: LoginScreen()})
	h.typeText("alice", FilterNoSpace)
	h.send(SwitchInput{})
	h.typeText(database.DemoPassword, FilterNone)
	h.send(TryLogin{})

	st := h.state()
	require.Equal(t, ClientScreen(ClientMain), st.Screen)
	require.Equal(t, LoginSuccessful, st.Popup)
	require.Equal(t, "alice", st.Client().Info.Username)

	h.send(TimeoutTick{Type: TimeoutLogin})
	require.Equal(t, LoginSuccessful, h.state().Popup)
	h.send(TimeoutTick{Type: TimeoutLogin})
	st = h.state()
	require.Equal(t, PopupNone, st.Popup)
	require.Equal(t, ModeNormal, st.Mode)
}

func TestLoginPkgAdmin(t *testing.T) {
	h := newHarness(t)
	h.login("admin")
	st := h.state()
	require.Equal(t, PkgAdminScreen(PkgAdminMain), st.Screen)
	require.Equal(t, int64(1), st.PkgAdmin().Info.BranchID)
	require.Nil(t, st.Client())
}

func TestLoginInvalid(t *testing.T) {
	h := newHarness(t)
	h.send(EnterScreen{Screen: LoginScreen()})
	h.typeText("alice", FilterNoSpace)
	h.send(SwitchInput{})
	h.typeText("wrong", FilterNone)
	h.send(TryLogin{})

	st := h.state()
	require.Equal(t, LoginScreen(), st.Screen)
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, service.ErrInvalidCredentials.Error(), st.Message)
	require.Nil(t, st.User)

	h.send(EnterPopup{Popup: PopupNone})
	st = h.state()
	require.Equal(t, Editing(1), st.Mode)
	require.Equal(t, "wrong", st.Input.Value(1))
}

func TestLogoutOnTitle(t *testing.T) {
	h := newHarness(t)
	h.login("bob")
	h.send(EnterScreen{Screen: TitleScreen()})
	require.Nil(t, h.state().User)
}

func TestQuitLogsOut(t *testing.T) {
	h := newHarness(t)
	h.login("bob")
	h.send(Quit{})
	require.True(t, h.s.Quitting())
	require.Nil(t, h.state().User)
}

func TestTableCursorWraps(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(PrevTableItem{Table: TablePackages})
	require.Equal(t, 2, h.state().Client().Packages.Index)
	h.send(NextTableItem{Table: TablePackages})
	require.Equal(t, 0, h.state().Client().Packages.Index)
}

func TestPackageSelectionToggles(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages}, NextTableItem{Table: TablePackages}, SelectTableItem{Table: TablePackages})
	c := h.state().Client()
	require.Len(t, c.Packages.Selected, 2)
	require.Equal(t, c.Packages.Viewing[1].TrackingNumber, c.Packages.Active.TrackingNumber)

	h.send(SelectTableItem{Table: TablePackages})
	c = h.state().Client()
	require.Len(t, c.Packages.Selected, 1)
	require.True(t, c.Packages.IsSelected(c.Packages.Viewing[0].TrackingNumber))
}

func TestOrderNeedsSelection(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(EnterPopup{Popup: ClientOrderMain})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(NoPackagesSelected).Error(), st.Message)
}

func (h *harness) orderToLocker(locker string) *State {
	h.t.Helper()
	h.send(EnterPopup{Popup: PopupNone}, EnterPopup{Popup: ClientOrderLocker})
	require.Equal(h.t, Editing(0), h.state().Mode)
	h.typeText(locker, FilterNumeric)
	h.send(TryGetUserLocker{Username: "alice", LockerID: h.state().Input.Value(0)})
	return h.state()
}

func TestOrderToLockerValidation(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages})

	st := h.orderToLocker("103")
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(InvalidUserLocker).Error(), st.Message)

	st = h.orderToLocker("999")
	require.Equal(t, invalid(InvalidUserLocker).Error(), st.Message)

	st = h.orderToLocker("101")
	require.Equal(t, invalid(LockerSameAsActive).Error(), st.Message)

	// Fill locker 102 up to the package limit.
	for i := 0; i < 4; i++ {
		h.exec(`INSERT INTO package(tracking_number, client, locker_id, weight, content) VALUES ($1, $2, $3, $4, $5)`,
			service.NewTrackingNumber(), "alice", 102, "0.10", "Filler")
	}
	st = h.orderToLocker("102")
	require.Equal(t, invalid(LockerTooManyPackages).Error(), st.Message)
	require.Equal(t, ClientScreen(ClientLockerPackages), st.Screen)
	require.Nil(t, st.Client().Order)
}

func TestOrderToLockerWeightExcess(t *testing.T) {
	h := newHarness(t)
	h.exec(`INSERT INTO package(tracking_number, client, locker_id, weight, content) VALUES ($1, $2, $3, $4, $5)`,
		service.NewTrackingNumber(), "alice", 102, "48.00", "Anvil")
	h.openLocker()

	var heaviest int
	c := h.state().Client()
	for i, p := range c.Packages.Viewing {
		if p.Weight.GreaterThan(c.Packages.Viewing[heaviest].Weight) {
			heaviest = i
		}
	}
	for i := 0; i < heaviest; i++ {
		h.send(NextTableItem{Table: TablePackages})
	}
	h.send(SelectTableItem{Table: TablePackages})

	st := h.orderToLocker("102")
	require.Equal(t, DisplayMsg, st.Popup)
	// 0.80 + 48.00 + 12.00 = 60.80
	require.Contains(t, st.Message, "10.80 kg")
}

func TestOrderToLockerPayment(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages}, NextTableItem{Table: TablePackages}, SelectTableItem{Table: TablePackages})
	selected := h.state().Client().Packages.Selected

	h.send(SwitchAction{})
	require.Equal(t, NoAction, h.state().Action, "no actions on the locker table itself")

	h.send(EnterPopup{Popup: ClientOrderMain}, SwitchAction{}, SelectAction{})
	st := h.state()
	require.Equal(t, ClientOrderLocker, st.Popup)
	require.Equal(t, Editing(0), st.Mode)

	h.typeText("102", FilterNumeric)
	h.send(TryGetUserLocker{Username: "alice", LockerID: h.state().Input.Value(0)})
	st = h.state()
	require.Equal(t, ClientInputPayment, st.Popup)
	require.Equal(t, Editing(0), st.Mode)
	require.Equal(t, int(BankPayPal), st.Action)
	require.Empty(t, st.Input.Value(0), "payment starts with a fresh buffer")
	order := st.Client().Order
	require.Equal(t, OrderToLocker, order.Kind)
	require.True(t, service.Quote(selected, false).Equal(order.Payment.Amount))

	h.send(SwitchAction{})
	require.Equal(t, int(BankBOFA), h.state().Action)
	h.typeText("TX-42", FilterNoSpace)
	h.send(TryPayment{})

	st = h.state()
	require.Equal(t, OrderSuccessful, st.Popup, st.Message)
	require.Contains(t, st.Message, "2 package(s)")
	require.Contains(t, st.Message, "BOFA")
	c := st.Client()
	require.Len(t, c.Packages.Viewing, 1)
	require.Empty(t, c.Packages.Selected)
	require.Nil(t, c.Order)

	pkgs, err := h.store.Packages.PackagesByLocker(h.ctx, 102)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)

	guides, err := h.store.Guides.GuidesBySender(h.ctx, "alice")
	require.NoError(t, err)
	require.Len(t, guides, 2)
}

func TestPaymentNeedsTransactionID(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages})
	h.orderToLocker("102")
	h.send(TryPayment{})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Contains(t, st.Message, "transaction id")
}

func TestOrderToBranch(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages})

	h.send(EnterPopup{Popup: ClientOrderBranch})
	h.typeText("9", FilterNumeric)
	h.send(TryGetUserBranch{BranchID: h.state().Input.Value(0)})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(InvalidUserBranch).Error(), st.Message)

	h.send(EnterPopup{Popup: PopupNone}, EnterPopup{Popup: ClientOrderBranch})
	h.typeText("3", FilterNumeric)
	h.send(TryGetUserBranch{BranchID: h.state().Input.Value(0)})
	st = h.state()
	require.Equal(t, ClientInputPayment, st.Popup)
	require.Equal(t, int64(3), st.Client().Order.Branch.ID)

	h.typeText("TX-77", FilterNoSpace)
	h.send(TryPayment{})
	require.Equal(t, OrderSuccessful, h.state().Popup, h.state().Message)
}

func TestOrderDeliveryAutoAdvances(t *testing.T) {
	h := newHarness(t)
	h.openLocker()
	h.send(SelectTableItem{Table: TablePackages})
	selected := h.state().Client().Packages.Selected

	h.send(EnterPopup{Popup: ClientOrderDelivery})
	st := h.state()
	require.Equal(t, ClientOrderDelivery, st.Popup)
	require.Equal(t, int64(1), st.Client().Order.Branch.ID)

	h.send(TimeoutTick{Type: TimeoutGetUserDelivery}, TimeoutTick{Type: TimeoutGetUserDelivery})
	require.Equal(t, ClientOrderDelivery, h.state().Popup)
	h.send(TimeoutTick{Type: TimeoutGetUserDelivery})
	st = h.state()
	require.Equal(t, ClientInputPayment, st.Popup)
	want := service.Quote(selected, true)
	require.True(t, want.Equal(st.Client().Order.Payment.Amount))
	require.True(t, want.GreaterThan(decimal.NewFromInt(10)))
}

func TestOrderDeliveryLimits(t *testing.T) {
	h := newHarness(t)
	h.login("bob")
	h.send(SwitchAction{}, SelectAction{}, SelectTableItem{Table: TableLockers})
	for i := 0; i < 4; i++ {
		h.send(SelectTableItem{Table: TablePackages}, NextTableItem{Table: TablePackages})
	}
	h.send(EnterPopup{Popup: ClientOrderDelivery})
	st := h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Contains(t, st.Message, "at most 3")

	// Locker 102 sits in a warehouse without a delivery branch.
	h2 := newHarness(t)
	h2.login("alice")
	h2.send(SwitchAction{}, SelectAction{}, NextTableItem{Table: TableLockers}, SelectTableItem{Table: TableLockers})
	require.Equal(t, int64(102), h2.state().Client().Lockers.Active.ID)
	h2.send(SelectTableItem{Table: TablePackages}, EnterPopup{Popup: ClientOrderDelivery})
	st = h2.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, invalid(NoCompatBranchDelivery).Error(), st.Message)
}

func TestSentPackages(t *testing.T) {
	h := newHarness(t)
	h.login("alice")
	h.send(SwitchAction{}, SwitchAction{}, SelectAction{})
	st := h.state()
	require.Equal(t, ClientScreen(ClientSentPackages), st.Screen)
	require.Len(t, st.Client().Guides.Viewing, 1)

	h.send(SelectTableItem{Table: TableSentGuides})
	c := h.state().Client()
	require.Equal(t, database.DemoGuideNumber, c.Guides.Active.Number)
	require.NotNil(t, c.Guides.ActivePayment)
	require.Equal(t, "TX-DEMO-0001", c.Guides.ActivePayment.TransactionID)

	h.send(SelectTableItem{Table: TableSentGuides})
	require.Nil(t, h.state().Client().Guides.Active)
}

func TestSettingsSave(t *testing.T) {
	h := newHarness(t)
	h.send(EnterScreen{Screen: SettingsScreen()})
	h.clearField()
	h.typeText("ftp://nope", FilterNoSpace)
	h.send(SaveSettings{})
	st := h.state()
	require.Equal(t, SettingsScreen(), st.Screen)
	require.Equal(t, DisplayMsg, st.Popup)
	require.Empty(t, h.saved)

	h.send(EnterPopup{Popup: PopupNone})
	h.clearField()
	h.typeText("http://routes.local:8080/graph/shortest", FilterNoSpace)
	h.send(SaveSettings{})
	st = h.state()
	require.Equal(t, TitleScreen(), st.Screen)
	require.Equal(t, DisplayMsg, st.Popup)
	require.Equal(t, []string{"http://routes.local:8080/graph/shortest"}, h.saved)
	require.Equal(t, "http://routes.local:8080/graph/shortest", h.ep.URL())
}

func TestPaymentOnlyFollowsDelivery(t *testing.T) {
	h := newHarness(t)
	h.login("bob")
	h.send(SwitchAction{}, SelectAction{}, SelectTableItem{Table: TableLockers})
	h.send(SelectTableItem{Table: TablePackages}, EnterPopup{Popup: ClientOrderDelivery})
	st := h.state()
	require.Equal(t, ClientOrderDelivery, st.Popup, st.Message)
	require.NotNil(t, st.Client().Order)

	h.send(EnterPopup{Popup: PopupNone})
	require.Nil(t, h.state().Client().Order, "closing the popup drops the draft")

	for i := 0; i < 4; i++ {
		h.send(NextTableItem{Table: TablePackages}, SelectTableItem{Table: TablePackages})
	}
	require.Len(t, h.state().Client().Packages.Selected, 5)

	h.send(EnterPopup{Popup: ClientInputPayment})
	st = h.state()
	require.Equal(t, DisplayMsg, st.Popup)
	require.Nil(t, st.Client().Order)
}
