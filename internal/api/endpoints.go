package api

import (
	"context"
	"fmt"
	"net/http"
)

// credentials is the login/signup request body shared by both surfaces.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Me probes the current user session. Returns nil without error when no
// session exists; the caller decides whether that is worth surfacing.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Signup creates an account and starts a session.
func (c *Client) Signup(ctx context.Context, username, password string) (*User, error) {
	return c.auth(ctx, "/auth/signup", username, password)
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	return c.auth(ctx, "/auth/login", username, password)
}

func (c *Client) auth(ctx context.Context, path, username, password string) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.post(ctx, path, credentials{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("unexpected response shape from %s: missing user", path)
	}
	return resp.User, nil
}

// Logout ends the user session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Trending lists the trending topics that seed the analysis workflow.
func (c *Client) Trending(ctx context.Context) ([]Topic, error) {
	var resp struct {
		Topics []Topic `json:"topics"`
	}
	if err := c.get(ctx, "/trending", &resp); err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

// FetchNews retrieves candidate news items for a keyword.
func (c *Client) FetchNews(ctx context.Context, keyword string) (*FetchNewsResult, error) {
	var resp FetchNewsResult
	body := struct {
		Keyword string `json:"keyword"`
	}{keyword}
	if err := c.post(ctx, "/fetch-news", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analyze runs sentiment analysis on one news item's text.
func (c *Client) Analyze(ctx context.Context, newsText, topic string) (*AnalysisResult, error) {
	var resp AnalysisResult
	body := struct {
		NewsText string `json:"news_text"`
		Topic    string `json:"topic"`
	}{newsText, topic}
	if err := c.post(ctx, "/analyze", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns the current user's search history and aggregates.
func (c *Client) History(ctx context.Context) (*History, error) {
	var resp History
	if err := c.get(ctx, "/history", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminMe probes the admin session. Nil without error means not logged in.
func (c *Client) AdminMe(ctx context.Context) (*Admin, error) {
	var resp struct {
		Admin *Admin `json:"admin"`
	}
	if err := c.get(ctx, "/admin/me", &resp); err != nil {
		return nil, err
	}
	return resp.Admin, nil
}

// AdminLogin starts an admin session.
func (c *Client) AdminLogin(ctx context.Context, username, password string) error {
	return c.post(ctx, "/admin/login", credentials{Username: username, Password: password}, nil)
}

// AdminLogout ends the admin session.
func (c *Client) AdminLogout(ctx context.Context) error {
	return c.post(ctx, "/admin/logout", nil, nil)
}

// AdminUsers returns the full user table.
func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var resp struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// AdminSearches returns the search table across all users.
func (c *Client) AdminSearches(ctx context.Context) ([]SearchRecord, error) {
	var resp struct {
		Searches []SearchRecord `json:"searches"`
	}
	if err := c.get(ctx, "/admin/searches", &resp); err != nil {
		return nil, err
	}
	return resp.Searches, nil
}

// AdminStatistics returns the aggregate counters for the overview tab.
func (c *Client) AdminStatistics(ctx context.Context) (*Statistics, error) {
	var resp Statistics
	if err := c.get(ctx, "/admin/statistics", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminActivity returns one page of the activity log with the total count.
func (c *Client) AdminActivity(ctx context.Context, limit, offset int) (*ActivityPage, error) {
	var resp ActivityPage
	path := fmt.Sprintf("/admin/activity?limit=%d&offset=%d", limit, offset)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminExport fetches the full data bundle. The raw bytes are returned
// alongside the decoded bundle so the export file can be a byte-faithful
// passthrough of what the server sent.
func (c *Client) AdminExport(ctx context.Context) (*ExportBundle, []byte, error) {
	data, err := c.Call(ctx, http.MethodGet, "/admin/export", nil)
	if err != nil {
		return nil, nil, err
	}
	var bundle ExportBundle
	if err := decode(data, "/admin/export", &bundle); err != nil {
		return nil, nil, err
	}
	return &bundle, data, nil
}
