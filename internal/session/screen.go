package session

import "fmt"

// ScreenKind is the top-level navigation location.
type ScreenKind uint8

const (
	ScreenTitle ScreenKind = iota
	ScreenSettings
	ScreenLogin
	ScreenClient
	ScreenPkgAdmin
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenTitle:
		return "Title"
	case ScreenSettings:
		return "Settings"
	case ScreenLogin:
		return "Login"
	case ScreenClient:
		return "Client"
	case ScreenPkgAdmin:
		return "Package Admin"
	}
	return fmt.Sprintf("ScreenKind(%d)", uint8(k))
}

// SubScreen is a location nested under the Client or PkgAdmin screens.
type SubScreen uint8

const (
	SubNone SubScreen = iota
	ClientMain
	ClientLockers
	ClientLockerPackages
	ClientSentPackages
	PkgAdminMain
	PkgAdminGuides
	PkgAdminGuideInfo
	PkgAdminAddPackage
)

var subScreenNames = map[SubScreen]string{
	SubNone:              "",
	ClientMain:           "Main",
	ClientLockers:        "Lockers",
	ClientLockerPackages: "Locker Packages",
	ClientSentPackages:   "Sent Packages",
	PkgAdminMain:         "Main",
	PkgAdminGuides:       "Guides",
	PkgAdminGuideInfo:    "Guide Info",
	PkgAdminAddPackage:   "Add Package",
}

func (s SubScreen) String() string {
	if n, ok := subScreenNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SubScreen(%d)", uint8(s))
}

// Div is the focused half of the add-package form.
type Div uint8

const (
	DivLeft Div = iota
	DivRight
)

// Screen is the active location: a kind plus, for the role screens, a
// subscreen. Div is only meaningful on PkgAdminAddPackage.
type Screen struct {
	Kind ScreenKind
	Sub  SubScreen
	Div  Div
}

func TitleScreen() Screen { return Screen{Kind: ScreenTitle} }
func SettingsScreen() Screen { return Screen{Kind: ScreenSettings} }
func LoginScreen() Screen { return Screen{Kind: ScreenLogin} }

func ClientScreen(sub SubScreen) Screen { return Screen{Kind: ScreenClient, Sub: sub} }
func PkgAdminScreen(sub SubScreen) Screen { return Screen{Kind: ScreenPkgAdmin, Sub: sub} }

func AddPackageScreen(div Div) Screen {
	return Screen{Kind: ScreenPkgAdmin, Sub: PkgAdminAddPackage, Div: div}
}

// Is reports whether s is the given kind and subscreen, ignoring the div.
func (s Screen) Is(kind ScreenKind, sub SubScreen) bool {
	return s.Kind == kind && s.Sub == sub
}

func (s Screen) String() string {
	switch {
	case s.Sub == SubNone:
		return s.Kind.String()
	case s.Sub == PkgAdminAddPackage && s.Div == DivRight:
		return s.Kind.String() + "/" + s.Sub.String() + "/Right"
	case s.Sub == PkgAdminAddPackage:
		return s.Kind.String() + "/" + s.Sub.String() + "/Left"
	}
	return s.Kind.String() + "/" + s.Sub.String()
}

// valid reports whether the subscreen belongs to the screen family.
func (s Screen) valid() bool {
	if s.Div != DivLeft && s.Sub != PkgAdminAddPackage {
		return false
	}
	switch s.Kind {
	case ScreenTitle, ScreenSettings, ScreenLogin:
		return s.Sub == SubNone
	case ScreenClient:
		return s.Sub >= ClientMain && s.Sub <= ClientSentPackages
	case ScreenPkgAdmin:
		return s.Sub >= PkgAdminMain && s.Sub <= PkgAdminAddPackage
	}
	return false
}

// Popup is a modal overlay. PopupNone means no popup is open.
type Popup uint8

const (
	PopupNone Popup = iota
	OrderSuccessful
	DisplayMsg
	LoginSuccessful
	ClientOrderMain
	ClientOrderLocker
	ClientOrderBranch
	ClientOrderDelivery
	ClientInputPayment
	FieldExcess
)

var popupNames = [...]string{
	PopupNone:           "None",
	OrderSuccessful:     "OrderSuccessful",
	DisplayMsg:          "DisplayMsg",
	LoginSuccessful:     "LoginSuccessful",
	ClientOrderMain:     "ClientOrderMain",
	ClientOrderLocker:   "ClientOrderLocker",
	ClientOrderBranch:   "ClientOrderBranch",
	ClientOrderDelivery: "ClientOrderDelivery",
	ClientInputPayment:  "ClientInputPayment",
	FieldExcess:         "FieldExcess",
}

func (p Popup) String() string {
	if int(p) < len(popupNames) {
		return popupNames[p]
	}
	return fmt.Sprintf("Popup(%d)", uint8(p))
}

// usesInput reports whether the popup edits the shared input fields.
func (p Popup) usesInput() bool {
	switch p {
	case ClientOrderLocker, ClientOrderBranch, ClientInputPayment:
		return true
	}
	return false
}

type screenKey struct {
	kind ScreenKind
	sub  SubScreen
}

// popupLegality lists the popups each screen may open besides the
// message popups, which are legal everywhere.
var popupLegality = map[screenKey][]Popup{
	{ScreenSettings, SubNone}:            {FieldExcess},
	{ScreenLogin, SubNone}:               {FieldExcess},
	{ScreenClient, ClientMain}:           {LoginSuccessful},
	{ScreenPkgAdmin, PkgAdminMain}:       {LoginSuccessful},
	{ScreenPkgAdmin, PkgAdminAddPackage}: {OrderSuccessful, FieldExcess},
	{ScreenClient, ClientLockerPackages}: {
		ClientOrderMain, ClientOrderLocker, ClientOrderBranch, ClientOrderDelivery,
		ClientInputPayment, OrderSuccessful, FieldExcess,
	},
}

// PopupAllowed reports whether p may be opened on screen s.
func PopupAllowed(s Screen, p Popup) bool {
	if p == PopupNone || p == DisplayMsg {
		return true
	}
	for _, allowed := range popupLegality[screenKey{s.Kind, s.Sub}] {
		if allowed == p {
			return true
		}
	}
	return false
}
