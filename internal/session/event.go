package session

import tea "github.com/charmbracelet/bubbletea"

// Event is the closed set of inputs that may mutate a session.
type Event interface {
	isEvent()
}

// TimeoutType names an independent timer.
type TimeoutType uint8

const (
	TimeoutResize TimeoutType = iota
	TimeoutCubeTick
	TimeoutLogin
	TimeoutGetUserDelivery

	timeoutTypes
)

func (t TimeoutType) String() string {
	switch t {
	case TimeoutResize:
		return "Resize"
	case TimeoutCubeTick:
		return "CubeTick"
	case TimeoutLogin:
		return "Login"
	case TimeoutGetUserDelivery:
		return "GetUserDelivery"
	}
	return "Timeout(?)"
}

// Filter restricts which characters reach an input field.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterMoney
	FilterAlphabetic
	FilterNoSpace
	FilterNumeric
)

// List names a vertical menu.
type List uint8

const (
	ListTitle List = iota
)

// Table names a row-selectable table.
type Table uint8

const (
	TableLockers Table = iota
	TablePackages
	TableSentGuides
	TableBranchGuides
)

type (
	Quit        struct{}
	TimeoutTick struct{ Type TimeoutType }
	EnterScreen struct{ Screen Screen }
	// EnterPopup with PopupNone closes the open popup.
	EnterPopup   struct{ Popup Popup }
	SwitchInput  struct{}
	SwitchAction struct{}
	SelectAction struct{}
	KeyInput     struct {
		Key    tea.KeyMsg
		Filter Filter
	}
	TryGetUserLocker struct {
		Username string
		LockerID string
	}
	TryGetUserBranch struct{ BranchID string }
	TryPayment       struct{}
	TryLogin         struct{}
	NextListItem     struct{ List List }
	PrevListItem     struct{ List List }
	SelectListItem   struct{ List List }
	NextTableItem    struct{ Table Table }
	PrevTableItem    struct{ Table Table }
	SelectTableItem  struct{ Table Table }
	TryGetRoute      struct{}
	TryAddPackage    struct{}
	SaveSettings     struct{}
	Resize           struct{}
)

func (Quit) isEvent() {}
func (TimeoutTick) isEvent() {}
func (EnterScreen) isEvent() {}
func (EnterPopup) isEvent() {}
func (SwitchInput) isEvent() {}
func (SwitchAction) isEvent() {}
func (SelectAction) isEvent() {}
func (KeyInput) isEvent() {}
func (TryGetUserLocker) isEvent() {}
func (TryGetUserBranch) isEvent() {}
func (TryPayment) isEvent() {}
func (TryLogin) isEvent() {}
func (NextListItem) isEvent() {}
func (PrevListItem) isEvent() {}
func (SelectListItem) isEvent() {}
func (NextTableItem) isEvent() {}
func (PrevTableItem) isEvent() {}
func (SelectTableItem) isEvent() {}
func (TryGetRoute) isEvent() {}
func (TryAddPackage) isEvent() {}
func (SaveSettings) isEvent() {}
func (Resize) isEvent() {}
