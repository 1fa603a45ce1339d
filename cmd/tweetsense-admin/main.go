package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/adminui"
	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/config"
	"github.com/nisarhm/tweetsense/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logf, err := logging.Open("tweetsense-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logf.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := cfg.ResolveAPIBase()
	logf.Info("api base resolved", "base", base)
	client := api.New(base)

	app := adminui.NewApp(adminui.Config{
		ResolveSession: func() tea.Cmd {
			return func() tea.Msg {
				admin, err := client.AdminMe(ctx)
				if err != nil {
					logf.Debug("admin session probe failed", "err", err)
					return adminui.SessionResolved{}
				}
				return adminui.SessionResolved{Admin: admin}
			}
		},
		Login: func(username, password string) tea.Cmd {
			return func() tea.Msg {
				if err := client.AdminLogin(ctx, username, password); err != nil {
					return adminui.LoginDone{Err: err}
				}
				return adminui.LoginDone{Admin: &api.Admin{Username: username}}
			}
		},
		Logout: func() tea.Cmd {
			return func() tea.Msg {
				err := client.AdminLogout(ctx)
				if err != nil {
					logf.Warn("admin logout failed", "err", err)
				}
				return adminui.LoggedOut{Err: err}
			}
		},
		LoadStatistics: func() tea.Cmd {
			return func() tea.Msg {
				stats, err := client.AdminStatistics(ctx)
				return adminui.StatsLoaded{Stats: stats, Err: err}
			}
		},
		LoadUsers: func() tea.Cmd {
			return func() tea.Msg {
				users, err := client.AdminUsers(ctx)
				return adminui.UsersLoaded{Users: users, Err: err}
			}
		},
		LoadSearches: func() tea.Cmd {
			return func() tea.Msg {
				searches, err := client.AdminSearches(ctx)
				return adminui.SearchesLoaded{Searches: searches, Err: err}
			}
		},
		LoadActivity: func(limit, offset int) tea.Cmd {
			return func() tea.Msg {
				page, err := client.AdminActivity(ctx, limit, offset)
				if err != nil {
					return adminui.ActivityLoaded{Err: err}
				}
				return adminui.ActivityLoaded{
					Activities: page.Activities,
					Total:      page.Total,
					Offset:     page.Offset,
				}
			}
		},
		LoadExport: func() tea.Cmd {
			return func() tea.Msg {
				bundle, raw, err := client.AdminExport(ctx)
				return adminui.ExportLoaded{Bundle: bundle, Raw: raw, Err: err}
			}
		},
		SaveExport: func(raw []byte) tea.Cmd {
			return func() tea.Msg {
				path, err := writeExport(cfg.UI.ExportDir, raw)
				if err != nil {
					logf.Error("export write failed", "err", err)
				} else {
					logf.Info("export written", "path", path)
				}
				return adminui.ExportSaved{Path: path, Err: err}
			}
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logf.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "tweetsense-admin: %v\n", err)
		os.Exit(1)
	}
}

// writeExport persists the export bundle as pretty-printed JSON. The bytes are
// reindented, never re-decoded, so the file content is exactly what the server
// sent.
func writeExport(dir string, raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("malformed export payload: %w", err)
	}

	name := fmt.Sprintf("admin-export-%s.json", time.Now().Format("2006-01-02"))
	path := name
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		path = filepath.Join(dir, name)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}
