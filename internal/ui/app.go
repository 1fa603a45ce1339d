package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/auth"
	"github.com/nisarhm/tweetsense/internal/ui/dashboard"
	"github.com/nisarhm/tweetsense/internal/ui/history"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// view is the active screen.
type view int

const (
	viewAuth view = iota
	viewDashboard
	viewHistory
)

// AppConfig supplies every command the app can trigger. The app itself never
// touches the network; it receives results via messages.
type AppConfig struct {
	ResolveSession func() tea.Cmd
	Login          auth.Submit
	Signup         auth.Submit
	Logout         func() tea.Cmd
	LoadTrending   func() tea.Cmd
	FetchNews      func(keyword string, seq int) tea.Cmd
	Analyze        func(newsText, topic string, seq int) tea.Cmd
	LoadHistory    func() tea.Cmd
}

// App is the root model for the user-facing surface. It owns the one Session
// for this surface; the admin surface has its own root and never shares it.
type App struct {
	cfg AppConfig

	user      *api.User
	view      view
	resolving bool

	authModel auth.Model
	dash      dashboard.Model
	hist      history.Model

	// reqSeq survives dashboard re-mounts (and the App's value copies) so
	// responses issued before a view switch can never be applied to the
	// fresh model.
	reqSeq *int

	width  int
	height int
	ready  bool
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	return App{
		cfg:       cfg,
		view:      viewAuth,
		resolving: true,
		authModel: auth.New(cfg.Login, cfg.Signup),
		reqSeq:    new(int),
	}
}

// Init probes for an existing session. The probe is silent: any failure just
// lands the user on the login form.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.authModel.Init()}
	if a.cfg.ResolveSession != nil {
		cmds = append(cmds, a.cfg.ResolveSession())
	} else {
		cmds = append(cmds, func() tea.Msg { return SessionResolved{} })
	}
	return tea.Batch(cmds...)
}

// User returns the active session identity, or nil (for testing).
func (a App) User() *api.User { return a.user }

// Resolving reports whether the startup probe is still pending (for testing).
func (a App) Resolving() bool { return a.resolving }

// Dashboard returns the workflow sub-model (for testing).
func (a App) Dashboard() dashboard.Model { return a.dash }

// Update handles messages and routes them to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.authModel.SetWidth(msg.Width)
		a.dash.SetSize(msg.Width, msg.Height-3)
		a.hist.SetSize(msg.Width, msg.Height-3)
		return a, nil

	case SessionResolved:
		a.resolving = false
		if msg.User != nil {
			return a.signIn(msg.User)
		}
		return a, nil

	case auth.Done:
		if msg.Err == nil && msg.User != nil {
			return a.signIn(msg.User)
		}
		var cmd tea.Cmd
		a.authModel, cmd = a.authModel.Update(msg)
		return a, cmd

	case LoggedOut:
		// Session is gone locally no matter what the server said.
		a.user = nil
		a.view = viewAuth
		a.authModel = auth.New(a.cfg.Login, a.cfg.Signup)
		a.authModel.SetWidth(a.width)
		return a, a.authModel.Init()
	}

	return a.forward(msg)
}

// signIn installs the session and mounts the dashboard.
func (a App) signIn(user *api.User) (tea.Model, tea.Cmd) {
	a.user = user
	return a.mountDashboard()
}

func (a App) mountDashboard() (tea.Model, tea.Cmd) {
	a.view = viewDashboard
	a.dash = dashboard.New(dashboard.Config{
		LoadTrending: a.cfg.LoadTrending,
		FetchNews:    a.cfg.FetchNews,
		Analyze:      a.cfg.Analyze,
		NextSeq:      a.nextSeq,
	})
	a.dash.SetSize(a.width, a.height-3)
	return a, a.dash.Init()
}

func (a App) mountHistory() (tea.Model, tea.Cmd) {
	a.view = viewHistory
	a.hist = history.New(a.cfg.LoadHistory)
	a.hist.SetSize(a.width, a.height-3)
	return a, a.hist.Init()
}

func (a App) nextSeq() int {
	*a.reqSeq = *a.reqSeq + 1
	return *a.reqSeq
}

// handleKey processes keyboard input.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.user == nil {
		var cmd tea.Cmd
		a.authModel, cmd = a.authModel.Update(msg)
		return a, cmd
	}

	// While the keyword input is focused, the dashboard owns the keyboard.
	if a.view == viewDashboard && a.dash.Editing() {
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "tab":
		// Switching re-mounts the target view: state is never cached across
		// view switches, matching a fetch-on-mount model.
		if a.view == viewDashboard {
			return a.mountHistory()
		}
		return a.mountDashboard()

	case "ctrl+o":
		if a.cfg.Logout != nil {
			return a, a.cfg.Logout()
		}
		return a, func() tea.Msg { return LoggedOut{} }
	}

	return a.forward(msg)
}

// forward routes a message to the active sub-model.
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.authModel, cmd = a.authModel.Update(msg)
	case viewDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case viewHistory:
		a.hist, cmd = a.hist.Update(msg)
	}
	return a, cmd
}

// View renders the UI.
func (a App) View() string {
	if !a.ready || a.resolving {
		return "Loading…"
	}

	header := a.viewHeader()

	var content string
	switch a.view {
	case viewAuth:
		content = a.authModel.View()
	case viewDashboard:
		content = a.dash.View()
	case viewHistory:
		content = a.hist.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, a.viewStatusBar())
}

func (a App) viewHeader() string {
	title := styles.TitleStyle.Render("Twitter News Sentiment")
	subtitle := styles.SubtitleStyle.Render("RoBERTa (cardiffnlp) · Twitter API v2")

	if a.user == nil {
		return title + "  " + subtitle
	}

	nav := []string{}
	for _, v := range []struct {
		view view
		name string
	}{{viewDashboard, "Dashboard"}, {viewHistory, "History"}} {
		if a.view == v.view {
			nav = append(nav, styles.NavActive.Render(v.name))
		} else {
			nav = append(nav, styles.NavInactive.Render(v.name))
		}
	}

	signedIn := styles.MutedText.Render("Signed in as ") + styles.NavActive.Render(a.user.Username)
	return title + "  " + strings.Join(nav, " · ") + "  " + signedIn
}

func (a App) viewStatusBar() string {
	if a.user == nil {
		return styles.StatusBar.Render(
			styles.StatusBarKey.Render("enter") + " submit  " +
				styles.StatusBarKey.Render("ctrl+t") + " login/signup  " +
				styles.StatusBarKey.Render("ctrl+c") + " quit")
	}

	return styles.StatusBar.Render(
		styles.StatusBarKey.Render("tab") + " dashboard/history  " +
			styles.StatusBarKey.Render("ctrl+o") + " logout  " +
			styles.StatusBarKey.Render("q") + " quit")
}
