package session

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/shopspring/decimal"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/logging/events"
	"github.com/jask/rushcargo/internal/route"
)

// NoAction is the action index when no action is highlighted.
const NoAction = -1

// InputMode is Normal, or Editing one of the two input fields.
type InputMode int8

const ModeNormal InputMode = -1

func Editing(field uint8) InputMode { return InputMode(field & 1) }

// Field returns the field being edited.
func (m InputMode) Field() (uint8, bool) {
	if m < 0 {
		return 0, false
	}
	return uint8(m), true
}

func (m InputMode) String() string {
	if f, ok := m.Field(); ok {
		return fmt.Sprintf("Editing(%d)", f)
	}
	return "Normal"
}

// InputFields is the pair of text buffers shared by every form.
type InputFields struct {
	Fields [2]textinput.Model
}

func newInputFields() InputFields {
	var in InputFields
	in.Reset()
	return in
}

// Reset empties both buffers and restores plain echo.
func (in *InputFields) Reset() {
	for i := range in.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Focus()
		in.Fields[i] = ti
	}
}

func (in *InputFields) Value(field uint8) string { return in.Fields[field&1].Value() }

func (in *InputFields) SetValue(field uint8, v string) {
	in.Fields[field&1].SetValue(v)
	in.Fields[field&1].CursorEnd()
}

// LockerData is the client's locker table.
type LockerData struct {
	Lockers []repository.Locker
	Index   int
	Active  *repository.Locker
}

// PackageData is a package table with an optional multi-selection.
type PackageData struct {
	Viewing  []repository.Package
	Index    int
	Selected []repository.Package
	Active   *repository.Package
}

// IsSelected reports whether the package is part of the selection.
func (d *PackageData) IsSelected(tracking string) bool {
	for _, p := range d.Selected {
		if p.TrackingNumber == tracking {
			return true
		}
	}
	return false
}

func (d *PackageData) toggle(p repository.Package) {
	for i, sel := range d.Selected {
		if sel.TrackingNumber == p.TrackingNumber {
			d.Selected = append(d.Selected[:i:i], d.Selected[i+1:]...)
			if len(d.Selected) == 0 {
				d.Selected = nil
			}
			return
		}
	}
	d.Selected = append(d.Selected, p)
}

// ShippingGuideData is a guide table plus the guide drilled into.
type ShippingGuideData struct {
	Viewing        []repository.ShippingGuide
	Index          int
	Active         *repository.ShippingGuide
	ActivePayment  *repository.Payment
	ActivePackages []repository.Package
}

// Bank is a payment provider.
type Bank uint8

const (
	BankPayPal Bank = iota
	BankBOFA
	BankAmazonPay

	bankCount
)

func (b Bank) String() string {
	switch b {
	case BankPayPal:
		return "PayPal"
	case BankBOFA:
		return "BOFA"
	case BankAmazonPay:
		return "AmazonPay"
	}
	return "Bank(?)"
}

// Banks lists providers in selection order.
func Banks() []Bank { return []Bank{BankPayPal, BankBOFA, BankAmazonPay} }

// PaymentData is a payment pending confirmation.
type PaymentData struct {
	Amount        decimal.Decimal
	TransactionID string
	Bank          Bank
}

// OrderKind is where an order sends the selected packages.
type OrderKind uint8

const (
	OrderToLocker OrderKind = iota
	OrderToBranch
	OrderDelivery
)

// OrderDraft is the destination chosen for the selected packages.
type OrderDraft struct {
	Kind    OrderKind
	Locker  *repository.Locker
	Branch  *repository.Branch
	Payment *PaymentData
}

// PackageDraft is an admin's package being registered. The raw field
// values survive switching between the two halves of the form.
type PackageDraft struct {
	Weight    string
	Content   string
	Recipient string
	Branch    string

	// Route is set only by a successful route lookup for RouteBranch.
	Route         []route.Node
	RouteDistance *int64
	RouteBranch   int64
}

func (d *PackageDraft) clearRoute() {
	d.Route = nil
	d.RouteDistance = nil
	d.RouteBranch = 0
}

// User is the logged-in account: *ClientUser or *PkgAdminUser.
type User interface {
	Username() string
	Role() string
}

type ClientUser struct {
	Info     repository.Client
	Lockers  LockerData
	Packages PackageData
	Guides   ShippingGuideData
	Order    *OrderDraft
}

func (c *ClientUser) Username() string { return c.Info.Username }
func (c *ClientUser) Role() string { return "client" }

type PkgAdminUser struct {
	Info   repository.PkgAdmin
	Guides ShippingGuideData
	Draft  PackageDraft
}

func (a *PkgAdminUser) Username() string { return a.Info.Username }
func (a *PkgAdminUser) Role() string { return "pkgadmin" }

// TitleData is the title screen menu and its animation.
type TitleData struct {
	Menu int
	Cube Cube
}

// TitleMenu lists the title screen entries.
var TitleMenu = []string{"Login", "Settings", "Exit"}

// State is the session aggregate. It is only ever touched under the
// session lock.
type State struct {
	Screen Screen
	Popup  Popup
	Mode   InputMode
	Input  InputFields
	Action int
	User   User

	// Message is the text of the open DisplayMsg, OrderSuccessful or
	// FieldExcess popup.
	Message string
	Title   TitleData
	// Counters holds elapsed ticks per timeout type.
	Counters [timeoutTypes]uint8
	Quit     bool

	suspended InputMode
}

func NewState() State {
	return State{
		Screen:    TitleScreen(),
		Mode:      ModeNormal,
		Input:     newInputFields(),
		Action:    NoAction,
		Title:     TitleData{Cube: NewCube()},
		suspended: ModeNormal,
	}
}

// Client returns the logged-in client, or nil.
func (st *State) Client() *ClientUser {
	c, _ := st.User.(*ClientUser)
	return c
}

// PkgAdmin returns the logged-in package admin, or nil.
func (st *State) PkgAdmin() *PkgAdminUser {
	a, _ := st.User.(*PkgAdminUser)
	return a
}

func (st *State) mustClient() *ClientUser {
	c := st.Client()
	if c == nil {
		logicError("client state required on %s", st.Screen)
	}
	return c
}

func (st *State) mustPkgAdmin() *PkgAdminUser {
	a := st.PkgAdmin()
	if a == nil {
		logicError("package admin state required on %s", st.Screen)
	}
	return a
}

// enterScreen switches screen, closes any popup, clears the action and
// sets the input mode. Unless carry is set the inputs are reset.
func (st *State) enterScreen(target Screen, mode InputMode, carry bool) {
	events.Navigation.Screen(st.Screen.String(), target.String())
	st.Screen = target
	st.Popup = PopupNone
	st.Message = ""
	st.Action = NoAction
	if !carry {
		st.Input.Reset()
	}
	st.Mode = mode
	st.suspended = mode
}

// openPopup opens p, suspending the current input mode if no popup was
// open yet. The popup starts in Normal mode.
func (st *State) openPopup(p Popup) {
	events.Navigation.Popup(st.Screen.String(), st.Popup.String(), p.String())
	if st.Popup == PopupNone {
		st.suspended = st.Mode
	}
	if st.Popup.usesInput() || p.usesInput() {
		st.Input.Reset()
	}
	st.Popup = p
	st.Mode = ModeNormal
	st.Action = NoAction
}

func (st *State) closePopup() {
	if st.Popup == PopupNone {
		return
	}
	events.Navigation.Popup(st.Screen.String(), st.Popup.String(), PopupNone.String())
	if st.Popup.usesInput() {
		st.Input.Reset()
	}
	st.Popup = PopupNone
	st.Message = ""
	st.Mode = st.suspended
	st.Action = NoAction
	// An order draft lives only as long as the popups building it.
	if c := st.Client(); c != nil {
		c.Order = nil
	}
}

// showMessage opens a message popup over whatever is on screen.
func (st *State) showMessage(p Popup, msg string) {
	st.openPopup(p)
	st.Message = msg
	events.Session.Message(msg)
}

func (st *State) logout() {
	if st.User == nil {
		return
	}
	events.Session.Logout(st.User.Username())
	st.User = nil
}
