package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/auth"
	"github.com/nisarhm/tweetsense/internal/ui/dashboard"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// counters tracks which command factories fired.
type counters struct {
	trending int
	history  int
	logouts  int
}

func testConfig(c *counters) AppConfig {
	return AppConfig{
		Login:  func(u, p string) tea.Cmd { return nil },
		Signup: func(u, p string) tea.Cmd { return nil },
		Logout: func() tea.Cmd {
			c.logouts++
			return func() tea.Msg { return LoggedOut{} }
		},
		LoadTrending: func() tea.Cmd { c.trending++; return nil },
		FetchNews:    func(keyword string, seq int) tea.Cmd { return nil },
		Analyze:      func(newsText, topic string, seq int) tea.Cmd { return nil },
		LoadHistory:  func() tea.Cmd { c.history++; return nil },
	}
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	app, ok := model.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", model)
	}
	return app
}

func ready(t *testing.T, c *counters) App {
	t.Helper()
	a := NewApp(testConfig(c))
	return update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestProbeWithSessionMountsDashboard(t *testing.T) {
	c := &counters{}
	a := ready(t, c)

	a = update(t, a, SessionResolved{User: &api.User{ID: 1, Username: "nisar"}})
	if a.User() == nil || a.User().Username != "nisar" {
		t.Fatalf("user = %+v", a.User())
	}
	if c.trending != 1 {
		t.Fatalf("trending loads = %d, want 1", c.trending)
	}
	if !strings.Contains(a.View(), "Signed in as") {
		t.Fatal("header missing signed-in line")
	}
}

func TestProbeWithoutSessionStaysOnLogin(t *testing.T) {
	c := &counters{}
	a := ready(t, c)

	a = update(t, a, SessionResolved{})
	if a.User() != nil {
		t.Fatalf("user = %+v, want nil", a.User())
	}
	if a.Resolving() {
		t.Fatal("probe still pending")
	}
	if !strings.Contains(a.View(), "Login") {
		t.Fatal("expected the login form")
	}
}

func TestAuthSuccessMountsDashboard(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{})

	a = update(t, a, auth.Done{User: &api.User{ID: 1, Username: "nisar"}})
	if a.User() == nil {
		t.Fatal("no session after auth success")
	}
	if c.trending != 1 {
		t.Fatalf("trending loads = %d, want 1", c.trending)
	}
}

func TestAuthFailureStaysOnForm(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{})

	a = update(t, a, auth.Done{Err: errors.New("Invalid username or password")})
	if a.User() != nil {
		t.Fatal("session installed on auth failure")
	}
	if !strings.Contains(a.View(), "Invalid username or password") {
		t.Fatal("error not shown on the form")
	}
}

func TestTabRemountsViews(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{User: &api.User{ID: 1, Username: "nisar"}})

	// Each switch re-mounts and re-fetches; nothing is cached.
	a = update(t, a, key("tab"))
	if c.history != 1 {
		t.Fatalf("history loads = %d, want 1", c.history)
	}
	a = update(t, a, key("tab"))
	if c.trending != 2 {
		t.Fatalf("trending loads = %d, want 2", c.trending)
	}
	a = update(t, a, key("tab"))
	if c.history != 2 {
		t.Fatalf("history loads = %d, want 2", c.history)
	}
}

func TestLogoutResetsToLogin(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{User: &api.User{ID: 1, Username: "nisar"}})

	a = update(t, a, key("ctrl+o"))
	if c.logouts != 1 {
		t.Fatalf("logouts = %d, want 1", c.logouts)
	}
	a = update(t, a, LoggedOut{})
	if a.User() != nil {
		t.Fatal("session survived logout")
	}
	if !strings.Contains(a.View(), "Login") {
		t.Fatal("expected the login form after logout")
	}
}

func TestEditingCapturesGlobalKeys(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{User: &api.User{ID: 1, Username: "nisar"}})

	// Enter keyword editing, then press keys that are global shortcuts
	// outside editing. They must land in the input, not the app.
	a = update(t, a, key("/"))
	if !a.Dashboard().Editing() {
		t.Fatal("expected editing mode")
	}
	a = update(t, a, key("q"))
	if a.User() == nil {
		t.Fatal("app acted on q while editing")
	}
	a = update(t, a, key("enter"))
	if a.Dashboard().Keyword() != "q" {
		t.Fatalf("keyword = %q, want %q", a.Dashboard().Keyword(), "q")
	}
}

func TestStaleResponseFromPreviousMountIsDropped(t *testing.T) {
	c := &counters{}
	a := ready(t, c)
	a = update(t, a, SessionResolved{User: &api.User{ID: 1, Username: "nisar"}})

	// Issue a fetch on the first dashboard mount.
	a = update(t, a, dashboard.TrendingLoaded{Topics: []api.Topic{{ID: 1, Title: "Go"}}})
	a = update(t, a, key("enter"))
	a = update(t, a, key("f")) // seq 1

	// Leave and come back: fresh dashboard, shared seq counter.
	a = update(t, a, key("tab"))
	a = update(t, a, key("tab"))

	// The old mount's response arrives now; the fresh model never
	// requested it.
	a = update(t, a, dashboard.NewsFetched{Seq: 1, Items: []api.NewsItem{{ID: 1, Text: "late"}}})
	if len(a.Dashboard().NewsItems()) != 0 {
		t.Fatal("stale response applied to a fresh mount")
	}
}
