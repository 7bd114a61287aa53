package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/session"
)

func TestViewTitle(t *testing.T) {
	a := New(session.New(session.Deps{}, session.Options{}), nil)
	_, cmd := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Nil(t, cmd)

	out := ansi.Strip(a.View())
	require.Contains(t, out, "RushCargo")
	require.Contains(t, out, "> Login")
	require.Contains(t, out, "Settings")
	require.Contains(t, out, "Not logged in")
	require.Contains(t, out, "quit")
}

func TestRenderPaymentPopup(t *testing.T) {
	a := New(session.New(session.Deps{}, session.Options{}), nil)
	a.width, a.height = 100, 40

	st := session.NewState()
	locker := repository.Locker{ID: 102}
	pkgs := []repository.Package{{TrackingNumber: "PKG-1", Weight: decimal.RequireFromString("2.50")}}
	st.User = &session.ClientUser{
		Info:     repository.Client{Username: "alice"},
		Lockers:  session.LockerData{Active: &repository.Locker{ID: 101}},
		Packages: session.PackageData{Viewing: pkgs, Selected: pkgs},
		Order: &session.OrderDraft{
			Kind:    session.OrderToLocker,
			Locker:  &locker,
			Payment: &session.PaymentData{Amount: decimal.RequireFromString("8.75")},
		},
	}
	st.Screen = session.ClientScreen(session.ClientLockerPackages)
	st.Popup = session.ClientInputPayment
	st.Mode = session.Editing(0)
	st.Action = int(session.BankAmazonPay)

	out := ansi.Strip(a.render(&st))
	require.Contains(t, out, "Payment")
	require.Contains(t, out, "8.75")
	require.Contains(t, out, "locker 102")
	require.Contains(t, out, "AmazonPay")
	require.Contains(t, out, "Transaction ID")
}

func TestRenderMessageWraps(t *testing.T) {
	a := New(session.New(session.Deps{}, session.Options{}), nil)
	a.width, a.height = 40, 20
	st := session.NewState()
	st.Popup = session.DisplayMsg
	st.Message = strings.Repeat("word ", 30)

	out := ansi.Strip(a.renderPopup(&st))
	require.Greater(t, len(splitLines(out)), 2)
	for _, line := range splitLines(out) {
		require.LessOrEqual(t, ansi.StringWidth(strings.TrimRight(line, " ")), a.popupWidth())
	}
}

func TestRenderCube(t *testing.T) {
	out := ansi.Strip(renderCube(session.NewCube(), 36, 14))
	require.Len(t, splitLines(out), 14)
	require.True(t, strings.ContainsAny(out, "#+."))
	require.Empty(t, renderCube(session.NewCube(), 0, 0))
}

func TestCellFitsWideRunes(t *testing.T) {
	require.Equal(t, 6, runewidth.StringWidth(cell("日本語テキスト", 6)))
	require.Equal(t, "ab    ", cell("ab", 6))
	require.Empty(t, cell("ab", 0))
}

func TestRenderTableWindow(t *testing.T) {
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{string(rune('a' + i))}
	}
	out := ansi.Strip(renderTable([]column{{"Name", 4}}, rows, 9, 3, nil))
	require.Contains(t, out, "showing 8-10 of 10")
	require.Contains(t, out, "> j")
	require.NotContains(t, out, "  a   ")
}
