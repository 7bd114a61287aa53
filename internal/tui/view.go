package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/service"
	"github.com/jask/rushcargo/internal/session"
)

const dateLayout = "2006-01-02 15:04"

func (a *App) render(st *session.State) string {
	header := a.renderHeader(st)
	body := a.renderScreen(st)
	status := a.renderStatus(statusText(st))
	footer := a.renderFooter(a.keys.HelpBindings(scopeFor(st)))
	base := header + "\n" + body
	if st.Popup == session.PopupNone {
		return a.placeWithFooter(base, status, footer)
	}
	return a.composeOverlay(base, status, footer, a.renderPopup(st), popupStyle(st.Popup))
}

func (a *App) renderHeader(st *session.State) string {
	content := headerAppStyle.Render("RushCargo") + headerPathStyle.Render("  "+st.Screen.String())
	if a.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(a.width).Render(content)
}

func statusText(st *session.State) string {
	if st.User == nil {
		return "Not logged in"
	}
	return fmt.Sprintf("Logged in as %s (%s)", st.User.Username(), st.User.Role())
}

func (a *App) renderStatus(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	if a.width <= 0 {
		return statusBarStyle.Render(flat)
	}
	return statusBarStyle.Width(a.width).Render(flat)
}

func (a *App) renderFooter(bindings []key.Binding) string {
	// Every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)
	if a.width <= 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}

func (a *App) placeWithFooter(body, statusLine, footer string) string {
	if a.height <= 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := max(a.height-2, 1)
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width lines keep stale cells from the previous frame away.
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, a.width)
	}
	return strings.Join(lines, "\n") + "\n" + statusLine + "\n" + footer
}

func (a *App) composeOverlay(base, statusLine, footer, content string, style lipgloss.Style) string {
	baseView := a.placeWithFooter(base, statusLine, footer)
	if a.height <= 0 || a.width <= 0 {
		return baseView + "\n\n" + style.Render(content)
	}
	modal := style.Render(lipgloss.NewStyle().Width(a.popupWidth()).Render(content))
	lines := splitLines(modal)
	targetHeight := max(a.height-2, 1)
	x := max((a.width-maxLineWidth(lines))/2, 0)
	y := max((targetHeight-len(lines))/2, 0)
	return overlayAt(baseView, modal, x, y, a.width, targetHeight)
}

func (a *App) popupWidth() int {
	if a.width <= 0 {
		return 60
	}
	return max(min(60, a.width-10), 20)
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 80
	}
	return max(a.width-4, 20)
}

// visibleRows is the table window left after the chrome and a few lines
// of screen header.
func (a *App) visibleRows() int {
	if a.height <= 0 {
		return 15
	}
	return max(a.height-12, 3)
}

func (a *App) renderSection(title, content string) string {
	w := a.contentWidth() - 4
	header := padRight(titleStyle.Render(title), w)
	separator := lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("─", w))
	return listBoxStyle.Width(a.contentWidth()).Render(header + "\n" + separator + "\n" + content)
}

func (a *App) renderScreen(st *session.State) string {
	switch st.Screen.Kind {
	case session.ScreenTitle:
		return a.renderTitle(st)
	case session.ScreenLogin:
		return a.renderSection("Log in", renderForm(st, "Username", "Password"))
	case session.ScreenSettings:
		return a.renderSection("Settings", renderForm(st, "Route service URL", ""))
	}
	if c := st.Client(); c != nil {
		switch st.Screen.Sub {
		case session.ClientMain:
			name := c.Info.FirstName + " " + c.Info.LastName
			return a.renderSection("Welcome, "+name, renderTabs([]string{"Lockers", "Sent packages"}, st.Action))
		case session.ClientLockers:
			return a.renderSection("Your lockers", a.lockersTable(c))
		case session.ClientLockerPackages:
			return a.renderSection(lockerTitle(c.Lockers.Active), a.packagesTable(c))
		case session.ClientSentPackages:
			return a.renderSection("Sent packages", a.sentTable(c))
		}
	}
	if adm := st.PkgAdmin(); adm != nil {
		switch st.Screen.Sub {
		case session.PkgAdminMain:
			name := adm.Info.FirstName + " " + adm.Info.LastName
			title := fmt.Sprintf("Welcome, %s (branch %d)", name, adm.Info.BranchID)
			return a.renderSection(title, renderTabs([]string{"Guides", "Add package"}, st.Action))
		case session.PkgAdminGuides:
			return a.renderSection("Guides through your branch", a.branchGuidesTable(adm))
		case session.PkgAdminGuideInfo:
			return a.renderSection("Guide details", renderGuideInfo(adm.Guides))
		case session.PkgAdminAddPackage:
			return a.renderSection("Register a package", a.renderAddPackage(st, adm))
		}
	}
	return ""
}

func (a *App) renderTitle(st *session.State) string {
	var menu strings.Builder
	for i, item := range session.TitleMenu {
		if i == st.Title.Menu {
			menu.WriteString(cursorStyle.Render("> "+item) + "\n")
			continue
		}
		menu.WriteString("  " + item + "\n")
	}
	cube := renderCube(st.Title.Cube, 36, 14)
	top := lipgloss.JoinHorizontal(lipgloss.Top, listBoxStyle.Render(strings.TrimSuffix(menu.String(), "\n")), "  ", cube)
	if a.help == "" {
		a.help = renderHelp(a.contentWidth() - 4)
	}
	return top + "\n" + a.help
}

// renderForm shows the two shared inputs with labels. An empty label
// hides its field.
func renderForm(st *session.State, labels ...string) string {
	editing, isEditing := st.Mode.Field()
	var parts []string
	for i, label := range labels {
		if label == "" {
			continue
		}
		ti := st.Input.Fields[i]
		style := inputStyle
		if isEditing && int(editing) == i && st.Popup == session.PopupNone {
			style = focusedInputStyle
		} else {
			ti.Blur()
		}
		parts = append(parts, labelStyle.Render(label)+"\n"+style.Render(ti.View()))
	}
	return strings.Join(parts, "\n")
}

func renderTabs(names []string, active int) string {
	tabs := make([]string, len(names))
	for i, n := range names {
		if i == active {
			tabs[i] = activeTabStyle.Render(n)
		} else {
			tabs[i] = inactiveTabStyle.Render(n)
		}
	}
	return strings.Join(tabs, " ")
}

func lockerTitle(l *repository.Locker) string {
	if l == nil {
		return "Locker"
	}
	return fmt.Sprintf("Locker %d · %s, %s", l.ID, l.Warehouse.Building, l.Warehouse.City)
}

func (a *App) lockersTable(c *session.ClientUser) string {
	cols := flexColumns(a.contentWidth()-6,
		column{"Locker", 8}, column{"Packages", 8}, column{"Weight kg", 10}, column{"Warehouse", 0})
	rows := make([][]string, len(c.Lockers.Lockers))
	for i, l := range c.Lockers.Lockers {
		rows[i] = []string{
			strconv.FormatInt(l.ID, 10),
			fmt.Sprintf("%d/%d", l.PackageCount, service.LockerMaxPackages),
			l.PackageWeight.StringFixed(2),
			fmt.Sprintf("%s, %s, %s", l.Warehouse.Building, l.Warehouse.City, l.Country.Name),
		}
	}
	return renderTable(cols, rows, c.Lockers.Index, a.visibleRows(), nil)
}

func (a *App) packagesTable(c *session.ClientUser) string {
	d := &c.Packages
	cols := flexColumns(a.contentWidth()-10,
		column{"Tracking", 12}, column{"Weight kg", 10}, column{"Received", 16}, column{"Content", 0})
	rows := make([][]string, len(d.Viewing))
	for i, p := range d.Viewing {
		rows[i] = []string{p.TrackingNumber, p.Weight.StringFixed(2), p.CreatedAt.Local().Format(dateLayout), p.Content}
	}
	mark := func(i int) string {
		if d.IsSelected(d.Viewing[i].TrackingNumber) {
			return selectedStyle.Render("[x] ")
		}
		return "[ ] "
	}
	out := renderTable(cols, rows, d.Index, a.visibleRows(), mark)
	if n := len(d.Selected); n > 0 {
		out += "\n" + valueStyle.Render(fmt.Sprintf("%d selected · %s kg", n, service.TotalWeight(d.Selected).StringFixed(2)))
	}
	return out
}

func guideDestination(g repository.ShippingGuide) string {
	switch {
	case g.ToLocker != nil:
		return fmt.Sprintf("locker %d", *g.ToLocker)
	case g.DeliveryBranch != nil:
		return fmt.Sprintf("delivery via branch %d", *g.DeliveryBranch)
	case g.ToBranch != nil:
		return fmt.Sprintf("branch %d", *g.ToBranch)
	}
	return "-"
}

func guideOrigin(g repository.ShippingGuide) string {
	switch {
	case g.FromLocker != nil:
		return fmt.Sprintf("locker %d", *g.FromLocker)
	case g.FromBranch != nil:
		return fmt.Sprintf("branch %d", *g.FromBranch)
	}
	return "-"
}

func (a *App) sentTable(c *session.ClientUser) string {
	d := &c.Guides
	cols := flexColumns(a.contentWidth()-6,
		column{"Guide", 14}, column{"Recipient", 12}, column{"Pkgs", 4}, column{"Sent", 16}, column{"To", 0})
	rows := make([][]string, len(d.Viewing))
	for i, g := range d.Viewing {
		rows[i] = []string{g.Number, g.Recipient, strconv.FormatInt(g.PackageCount, 10),
			g.CreatedAt.Local().Format(dateLayout), guideDestination(g)}
	}
	out := renderTable(cols, rows, d.Index, a.visibleRows(), nil)
	if d.Active != nil {
		out += "\n\n" + titleStyle.Render("Guide "+d.Active.Number) + "\n" + renderPayment(d.ActivePayment)
	}
	return out
}

func renderPayment(p *repository.Payment) string {
	if p == nil {
		return mutedStyle.Render("No payment recorded.")
	}
	return strings.Join([]string{
		labelStyle.Render("Paid        ") + valueStyle.Render(p.Amount.StringFixed(2)),
		labelStyle.Render("Bank        ") + p.Bank,
		labelStyle.Render("Transaction ") + p.TransactionID,
	}, "\n")
}

func (a *App) branchGuidesTable(adm *session.PkgAdminUser) string {
	d := &adm.Guides
	cols := flexColumns(a.contentWidth()-6,
		column{"Guide", 14}, column{"Recipient", 12}, column{"From", 12}, column{"Km", 6}, column{"To", 0})
	rows := make([][]string, len(d.Viewing))
	for i, g := range d.Viewing {
		km := "-"
		if g.RouteDistance != nil {
			km = strconv.FormatInt(*g.RouteDistance, 10)
		}
		rows[i] = []string{g.Number, g.Recipient, guideOrigin(g), km, guideDestination(g)}
	}
	return renderTable(cols, rows, d.Index, a.visibleRows(), nil)
}

func renderGuideInfo(d session.ShippingGuideData) string {
	g := d.Active
	if g == nil {
		return mutedStyle.Render("No guide selected.")
	}
	sender := "counter"
	if g.Sender != nil {
		sender = *g.Sender
	}
	lines := []string{
		labelStyle.Render("Guide     ") + titleStyle.Render(g.Number),
		labelStyle.Render("Sender    ") + sender,
		labelStyle.Render("Recipient ") + g.Recipient,
		labelStyle.Render("From      ") + guideOrigin(*g),
		labelStyle.Render("To        ") + guideDestination(*g),
		labelStyle.Render("Created   ") + g.CreatedAt.Local().Format(dateLayout),
	}
	if g.RouteDistance != nil {
		lines = append(lines, labelStyle.Render("Distance  ")+valueStyle.Render(fmt.Sprintf("%d km", *g.RouteDistance)))
	}
	lines = append(lines, "", renderPayment(d.ActivePayment), "", titleStyle.Render("Packages"))
	for _, p := range d.ActivePackages {
		lines = append(lines, fmt.Sprintf("  %s  %s kg  %s", p.TrackingNumber, p.Weight.StringFixed(2), p.Content))
	}
	if len(d.ActivePackages) == 0 {
		lines = append(lines, mutedStyle.Render("  none"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderAddPackage(st *session.State, adm *session.PkgAdminUser) string {
	div := int(st.Screen.Div)
	tabs := make([]string, 2)
	for i, n := range []string{"Package", "Recipient"} {
		switch {
		case i == div:
			tabs[i] = activeTabStyle.Render(n)
		case i == st.Action:
			tabs[i] = inactiveTabStyle.Foreground(colorFocus).Render(n)
		default:
			tabs[i] = inactiveTabStyle.Render(n)
		}
	}
	var form string
	if st.Screen.Div == session.DivLeft {
		form = renderForm(st, "Weight (kg)", "Content")
	} else {
		form = renderForm(st, "Recipient username", "Destination branch")
	}

	d := adm.Draft
	var route string
	switch {
	case d.RouteDistance == nil:
		route = mutedStyle.Render("No route yet.")
	default:
		stops := make([]string, len(d.Route))
		for i, n := range d.Route {
			stops[i] = fmt.Sprintf("%s (%s)", n.Building, n.City)
		}
		route = labelStyle.Render(fmt.Sprintf("Route to branch %d: ", d.RouteBranch)) +
			valueStyle.Render(fmt.Sprintf("%d km", *d.RouteDistance)) + "\n" +
			wordwrap.String(strings.Join(stops, " → "), a.contentWidth()-6)
	}
	return strings.Join(tabs, " ") + "\n\n" + form + "\n\n" + route
}

func popupStyle(p session.Popup) lipgloss.Style {
	switch p {
	case session.DisplayMsg, session.FieldExcess:
		return errorModalStyle
	case session.OrderSuccessful, session.LoginSuccessful:
		return successModalStyle
	}
	return modalStyle
}

func (a *App) renderPopup(st *session.State) string {
	w := a.popupWidth()
	switch st.Popup {
	case session.DisplayMsg:
		return titleStyle.Render("Notice") + "\n" + wordwrap.String(st.Message, w)
	case session.FieldExcess:
		return warningStyle.Render("Too long") + "\n" + wordwrap.String(st.Message, w)
	case session.OrderSuccessful:
		return titleStyle.Render("Done") + "\n" + wordwrap.String(st.Message, w)
	case session.LoginSuccessful:
		return titleStyle.Render("Welcome back, " + st.User.Username() + "!")
	}

	c := st.Client()
	if c == nil {
		return ""
	}
	n := len(c.Packages.Selected)
	switch st.Popup {
	case session.ClientOrderMain:
		opts := []string{"Another locker", "A branch", "Home delivery"}
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("Send %d package(s) to", n)) + "\n")
		for i, o := range opts {
			if i == st.Action {
				b.WriteString(cursorStyle.Render("> "+o) + "\n")
			} else {
				b.WriteString("  " + o + "\n")
			}
		}
		return strings.TrimSuffix(b.String(), "\n")
	case session.ClientOrderLocker:
		return titleStyle.Render("Destination locker") + "\n" + popupInput(st)
	case session.ClientOrderBranch:
		return titleStyle.Render("Destination branch") + "\n" + popupInput(st)
	case session.ClientOrderDelivery:
		msg := "Finding a delivery branch..."
		if c.Order != nil && c.Order.Branch != nil {
			b := c.Order.Branch
			msg = fmt.Sprintf("Home delivery from %s (%s). Preparing payment...", b.Name, b.City)
		}
		return titleStyle.Render("Home delivery") + "\n" + wordwrap.String(msg, w)
	case session.ClientInputPayment:
		return renderPaymentForm(st, c, w)
	}
	return ""
}

func popupInput(st *session.State) string {
	return focusedInputStyle.Render(st.Input.Fields[0].View())
}

func renderPaymentForm(st *session.State, c *session.ClientUser, w int) string {
	if c.Order == nil || c.Order.Payment == nil {
		return ""
	}
	var dest string
	switch o := c.Order; o.Kind {
	case session.OrderToLocker:
		dest = fmt.Sprintf("locker %d", o.Locker.ID)
	case session.OrderToBranch:
		dest = fmt.Sprintf("branch %d (%s)", o.Branch.ID, o.Branch.Name)
	case session.OrderDelivery:
		dest = fmt.Sprintf("home delivery via %s", o.Branch.Name)
	}
	banks := make([]string, 0, 3)
	for _, b := range session.Banks() {
		if int(b) == st.Action {
			banks = append(banks, activeTabStyle.Render(b.String()))
		} else {
			banks = append(banks, inactiveTabStyle.Render(b.String()))
		}
	}
	summary := fmt.Sprintf("%d package(s) to %s", len(c.Packages.Selected), dest)
	return strings.Join([]string{
		titleStyle.Render("Payment"),
		wordwrap.String(summary, w),
		labelStyle.Render("Amount ") + valueStyle.Render(c.Order.Payment.Amount.StringFixed(2)),
		"",
		labelStyle.Render("Transaction ID"),
		popupInput(st),
		strings.Join(banks, " "),
	}, "\n")
}
