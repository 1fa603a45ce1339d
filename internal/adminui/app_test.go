package adminui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/api"
)

func appUpdate(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	app, ok := model.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", model)
	}
	return app
}

func readyApp(t *testing.T, cfg Config) App {
	t.Helper()
	a := NewApp(cfg)
	return appUpdate(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestLoginSuccessMountsDashboard(t *testing.T) {
	stats := 0
	a := readyApp(t, Config{
		Login:          func(u, p string) tea.Cmd { return nil },
		LoadStatistics: func() tea.Cmd { stats++; return nil },
	})
	a = appUpdate(t, a, SessionResolved{})

	a = appUpdate(t, a, LoginDone{Admin: &api.Admin{Username: "admin"}})
	if a.Admin() == nil || a.Admin().Username != "admin" {
		t.Fatalf("admin = %+v", a.Admin())
	}
	if !strings.Contains(a.View(), "signed in as") {
		t.Fatal("header missing signed-in line")
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	a := readyApp(t, Config{
		Login: func(u, p string) tea.Cmd { return nil },
	})
	a = appUpdate(t, a, SessionResolved{})

	a = appUpdate(t, a, LoginDone{Err: errors.New("Invalid admin credentials")})
	if a.Admin() != nil {
		t.Fatal("session installed on login failure")
	}
	if !strings.Contains(a.View(), "Invalid admin credentials") {
		t.Fatal("error not shown on the form")
	}
}

func TestLogoutDropsSessionLocally(t *testing.T) {
	a := readyApp(t, Config{
		Login: func(u, p string) tea.Cmd { return nil },
	})
	a = appUpdate(t, a, SessionResolved{Admin: &api.Admin{Username: "admin"}})

	// Even a failed server-side logout drops the session here.
	a = appUpdate(t, a, LoggedOut{Err: errors.New("connection refused")})
	if a.Admin() != nil {
		t.Fatal("session survived logout")
	}
	if !strings.Contains(a.View(), "Admin Login") {
		t.Fatal("expected the login form after logout")
	}
}
