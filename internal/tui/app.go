package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rushcargo/internal/session"
)

// App is the bubbletea model. It owns no session state: keys go to the
// loop, and View reads the session under its lock.
type App struct {
	session *session.Session
	keys    *KeyRegistry
	decoder *Decoder
	loop    *session.Loop
	help    string
	width   int
	height  int
}

// refreshMsg asks for a redraw after the loop handled something.
type refreshMsg struct{}

// quitMsg is sent once the loop has stopped.
type quitMsg struct{}

func New(s *session.Session, keys *KeyRegistry) *App {
	if keys == nil {
		keys = NewKeyRegistry()
	}
	return &App{session: s, keys: keys, decoder: NewDecoder(keys)}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.loop != nil {
			a.loop.Key(m)
		}
	case tea.WindowSizeMsg:
		if m.Width != a.width {
			a.help = ""
		}
		a.width, a.height = m.Width, m.Height
		if a.loop != nil {
			a.loop.Send(session.Resize{})
		}
	case refreshMsg:
		if a.session.Quitting() {
			return a, tea.Quit
		}
	case quitMsg:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) View() string {
	if a.session.Quitting() {
		return ""
	}
	var out string
	a.session.Read(func(st *session.State) { out = a.render(st) })
	return out
}

// Run drives the session through a bubbletea program until the session
// quits or ctx ends. rates sets the tick period of each timer.
func Run(ctx context.Context, s *session.Session, keys *KeyRegistry, rates map[session.TimeoutType]time.Duration, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := New(s, keys)
	p := tea.NewProgram(app, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)...)
	// Redraw requests coalesce so the loop never waits on the program,
	// which may itself be waiting to queue a key.
	refresh := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-refresh:
				p.Send(refreshMsg{})
			}
		}
	}()
	app.loop = session.NewLoop(s, app.decoder.Decode, func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})

	go session.NewScheduler(rates, app.loop.Send).Run(ctx)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- app.loop.Run(ctx)
		p.Send(quitMsg{})
	}()

	_, err := p.Run()
	cancel()
	if lerr := <-loopErr; lerr != nil && !errors.Is(lerr, context.Canceled) {
		return lerr
	}
	if errors.Is(err, tea.ErrProgramKilled) && s.Quitting() {
		return nil
	}
	return err
}
