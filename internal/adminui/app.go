package adminui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/auth"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// Config supplies every command the admin surface can trigger.
type Config struct {
	ResolveSession func() tea.Cmd
	Login          auth.Submit
	Logout         func() tea.Cmd
	LoadStatistics func() tea.Cmd
	LoadUsers      func() tea.Cmd
	LoadSearches   func() tea.Cmd
	LoadActivity   func(limit, offset int) tea.Cmd
	LoadExport     func() tea.Cmd
	SaveExport     func(raw []byte) tea.Cmd
}

// App is the root model for the admin surface. Its Session is entirely its
// own: resolving an admin session never touches the user surface and vice
// versa.
type App struct {
	cfg Config

	admin     *api.Admin
	resolving bool

	login login
	dash  Dashboard

	width  int
	height int
	ready  bool
}

// NewApp creates the admin root model.
func NewApp(cfg Config) App {
	return App{
		cfg:       cfg,
		resolving: true,
		login:     newLogin(cfg.Login),
	}
}

// Init probes for an existing admin session.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.login.Init()}
	if a.cfg.ResolveSession != nil {
		cmds = append(cmds, a.cfg.ResolveSession())
	} else {
		cmds = append(cmds, func() tea.Msg { return SessionResolved{} })
	}
	return tea.Batch(cmds...)
}

// Admin returns the active admin identity, or nil (for testing).
func (a App) Admin() *api.Admin { return a.admin }

// Dash returns the dashboard sub-model (for testing).
func (a App) Dash() Dashboard { return a.dash }

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.admin == nil {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if msg.String() == "q" {
			return a, tea.Quit
		}
		if msg.String() == "ctrl+o" {
			if a.cfg.Logout != nil {
				return a, a.cfg.Logout()
			}
			return a, func() tea.Msg { return LoggedOut{} }
		}
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.dash.SetSize(msg.Width, msg.Height-3)
		return a, nil

	case SessionResolved:
		a.resolving = false
		if msg.Admin != nil {
			return a.signIn(msg.Admin)
		}
		return a, nil

	case LoginDone:
		if msg.Err == nil && msg.Admin != nil {
			return a.signIn(msg.Admin)
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case LoggedOut:
		a.admin = nil
		a.login = newLogin(a.cfg.Login)
		return a, a.login.Init()
	}

	// Everything else belongs to whichever screen is active.
	var cmd tea.Cmd
	if a.admin == nil {
		a.login, cmd = a.login.Update(msg)
	} else {
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

// signIn installs the admin session and mounts the dashboard.
func (a App) signIn(admin *api.Admin) (tea.Model, tea.Cmd) {
	a.admin = admin
	a.dash = NewDashboard(a.cfg)
	a.dash.SetSize(a.width, a.height-3)
	return a, a.dash.Init()
}

// View renders the UI.
func (a App) View() string {
	if !a.ready || a.resolving {
		return "Loading…"
	}

	header := styles.TitleStyle.Render("Admin Panel · Sentiment App")
	if a.admin != nil {
		header += "  " + styles.MutedText.Render("signed in as ") + styles.NavActive.Render(a.admin.Username)
	}

	var content string
	if a.admin == nil {
		content = a.login.View()
	} else {
		content = a.dash.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, a.viewStatusBar())
}

func (a App) viewStatusBar() string {
	if a.admin == nil {
		return styles.StatusBar.Render(
			styles.StatusBarKey.Render("enter") + " login  " +
				styles.StatusBarKey.Render("ctrl+c") + " quit")
	}
	return styles.StatusBar.Render(
		styles.StatusBarKey.Render("1-5/←/→") + " tabs  " +
			styles.StatusBarKey.Render("ctrl+o") + " logout  " +
			styles.StatusBarKey.Render("q") + " quit")
}
