package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/config"
	"github.com/nisarhm/tweetsense/internal/logging"
	"github.com/nisarhm/tweetsense/internal/ui"
	"github.com/nisarhm/tweetsense/internal/ui/auth"
	"github.com/nisarhm/tweetsense/internal/ui/dashboard"
	"github.com/nisarhm/tweetsense/internal/ui/history"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logf, err := logging.Open("tweetsense")
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

	app := ui.NewApp(ui.AppConfig{
		ResolveSession: func() tea.Cmd {
			return func() tea.Msg {
				user, err := client.Me(ctx)
				if err != nil {
					// The probe is silent: a dead backend or an expired
					// session both just land on the login form.
					logf.Debug("session probe failed", "err", err)
					return ui.SessionResolved{}
				}
				return ui.SessionResolved{User: user}
			}
		},
		Login: func(username, password string) tea.Cmd {
			return func() tea.Msg {
				user, err := client.Login(ctx, username, password)
				return auth.Done{User: user, Err: err}
			}
		},
		Signup: func(username, password string) tea.Cmd {
			return func() tea.Msg {
				user, err := client.Signup(ctx, username, password)
				return auth.Done{User: user, Err: err}
			}
		},
		Logout: func() tea.Cmd {
			return func() tea.Msg {
				err := client.Logout(ctx)
				if err != nil {
					logf.Warn("logout failed", "err", err)
				}
				return ui.LoggedOut{Err: err}
			}
		},
		LoadTrending: func() tea.Cmd {
			return func() tea.Msg {
				topics, err := client.Trending(ctx)
				if err != nil {
					logf.Error("trending fetch failed", "err", err)
				}
				return dashboard.TrendingLoaded{Topics: topics, Err: err}
			}
		},
		FetchNews: func(keyword string, seq int) tea.Cmd {
			return func() tea.Msg {
				res, err := client.FetchNews(ctx, keyword)
				if err != nil {
					return dashboard.NewsFetched{Seq: seq, Err: err}
				}
				return dashboard.NewsFetched{Seq: seq, Items: res.NewsItems, Message: res.Message}
			}
		},
		Analyze: func(newsText, topic string, seq int) tea.Cmd {
			return func() tea.Msg {
				res, err := client.Analyze(ctx, newsText, topic)
				return dashboard.AnalysisDone{Seq: seq, Result: res, Err: err}
			}
		},
		LoadHistory: func() tea.Cmd {
			return func() tea.Msg {
				h, err := client.History(ctx)
				return history.Loaded{History: h, Err: err}
			}
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logf.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "tweetsense: %v\n", err)
		os.Exit(1)
	}
}
