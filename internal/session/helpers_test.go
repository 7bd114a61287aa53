package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/database/dbtest"
	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/route"
)

type harness struct {
	t     *testing.T
	s     *Session
	store *repository.Store
	ep    *route.Endpoint
	ctx   context.Context
	saved []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := dbtest.Store(t)
	ep := route.NewEndpoint("http://127.0.0.1:1/graph/shortest")
	h := &harness{t: t, store: store, ep: ep, ctx: context.Background()}
	h.s = New(Deps{
		Store:    store,
		Planner:  route.NewClient(ep, time.Second),
		Endpoint: ep,
		SaveRoute: func(url string) error {
			h.saved = append(h.saved, url)
			return nil
		},
	}, Options{LoginTicks: 2, DeliveryTicks: 3})
	return h
}

// routeServer points the endpoint at a test server answering with status
// and body.
func (h *harness) routeServer(status int, body string) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	h.t.Cleanup(srv.Close)
	h.ep.Set(srv.URL + "/graph/shortest")
}

func (h *harness) send(evs ...Event) {
	for _, ev := range evs {
		h.s.Update(h.ctx, ev)
	}
}

// state copies the session state under the lock.
func (h *harness) state() *State {
	var out State
	h.s.Read(func(st *State) { out = *st })
	return &out
}

func (h *harness) typeText(text string, f Filter) {
	for _, r := range text {
		h.send(KeyInput{Key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, Filter: f})
	}
}

func (h *harness) clearField() {
	h.send(KeyInput{Key: tea.KeyMsg{Type: tea.KeyCtrlU}})
}

func (h *harness) login(username string) {
	h.t.Helper()
	h.send(EnterScreen{Screen: LoginScreen()})
	h.typeText(username, FilterNoSpace)
	h.send(SwitchInput{})
	h.typeText(database.DemoPassword, FilterNone)
	h.send(TryLogin{})
	st := h.state()
	require.Equal(h.t, LoginSuccessful, st.Popup, st.Message)
	h.send(EnterPopup{Popup: PopupNone})
}

// openLocker logs alice in and opens locker 101.
func (h *harness) openLocker() {
	h.t.Helper()
	h.login("alice")
	h.send(SwitchAction{}, SelectAction{})
	require.Equal(h.t, ClientScreen(ClientLockers), h.state().Screen)
	h.send(SelectTableItem{Table: TableLockers})
	st := h.state()
	require.Equal(h.t, ClientScreen(ClientLockerPackages), st.Screen, st.Message)
	require.Equal(h.t, int64(101), st.Client().Lockers.Active.ID)
}

func (h *harness) exec(query string, args ...any) {
	h.t.Helper()
	_, err := h.store.DB.ExecContext(h.ctx, query, args...)
	require.NoError(h.t, err)
}
