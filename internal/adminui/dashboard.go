package adminui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// tab is one of the admin dashboard panes.
type tab int

const (
	tabOverview tab = iota
	tabUsers
	tabSearches
	tabActivity
	tabExport
)

var tabNames = []string{"Overview", "Users", "Searches", "Activity Log", "Export"}

// activityLimit is the fixed page size for the activity log.
const activityLimit = 100

// Dashboard is the tabbed admin surface. Each tab keeps its own loading flag
// and error so a failure in one never bleeds into another.
type Dashboard struct {
	cfg Config

	active tab

	stats      *api.Statistics
	users      []api.AdminUser
	searches   []api.SearchRecord
	activities []api.ActivityRecord
	total      int
	offset     int
	bundle     *api.ExportBundle
	raw        []byte
	savedPath  string

	loading [5]bool
	errMsg  [5]string

	width  int
	height int
}

// NewDashboard creates the admin dashboard on the Overview tab.
func NewDashboard(cfg Config) Dashboard {
	d := Dashboard{cfg: cfg}
	d.loading[tabOverview] = true
	return d
}

// Init fetches the initial tab's data.
func (m Dashboard) Init() tea.Cmd {
	if m.cfg.LoadStatistics == nil {
		return nil
	}
	return m.cfg.LoadStatistics()
}

// SetSize updates the render area.
func (m *Dashboard) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Active returns the active tab index (for testing).
func (m Dashboard) Active() int { return int(m.active) }

// Offset returns the activity page offset (for testing).
func (m Dashboard) Offset() int { return m.offset }

// Activities returns the current activity page (for testing).
func (m Dashboard) Activities() []api.ActivityRecord { return m.activities }

// Total returns the server-reported activity total (for testing).
func (m Dashboard) Total() int { return m.total }

// ErrMsg returns the active tab's error text (for testing).
func (m Dashboard) ErrMsg() string { return m.errMsg[m.active] }

// Update handles messages.
func (m Dashboard) Update(msg tea.Msg) (Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case StatsLoaded:
		m.loading[tabOverview] = false
		if msg.Err != nil {
			m.errMsg[tabOverview] = msg.Err.Error()
			return m, nil
		}
		m.stats = msg.Stats
		return m, nil

	case UsersLoaded:
		m.loading[tabUsers] = false
		if msg.Err != nil {
			m.errMsg[tabUsers] = msg.Err.Error()
			return m, nil
		}
		m.users = msg.Users
		return m, nil

	case SearchesLoaded:
		m.loading[tabSearches] = false
		if msg.Err != nil {
			m.errMsg[tabSearches] = msg.Err.Error()
			return m, nil
		}
		m.searches = msg.Searches
		return m, nil

	case ActivityLoaded:
		m.loading[tabActivity] = false
		if msg.Err != nil {
			m.errMsg[tabActivity] = msg.Err.Error()
			return m, nil
		}
		// The page replaces whatever was shown; offset follows the response so
		// the range line can never disagree with the rows.
		m.activities = msg.Activities
		m.total = msg.Total
		m.offset = msg.Offset
		return m, nil

	case ExportLoaded:
		m.loading[tabExport] = false
		if msg.Err != nil {
			m.errMsg[tabExport] = msg.Err.Error()
			return m, nil
		}
		m.bundle = msg.Bundle
		m.raw = msg.Raw
		return m, nil

	case ExportSaved:
		if msg.Err != nil {
			m.errMsg[tabExport] = msg.Err.Error()
			return m, nil
		}
		m.savedPath = msg.Path
		return m, nil
	}

	return m, nil
}

func (m Dashboard) handleKey(msg tea.KeyMsg) (Dashboard, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4", "5":
		return m.switchTab(tab(msg.String()[0] - '1'))

	case "left", "h":
		if m.active > tabOverview {
			return m.switchTab(m.active - 1)
		}
		return m, nil

	case "right", "l":
		if m.active < tabExport {
			return m.switchTab(m.active + 1)
		}
		return m, nil

	case "r":
		cmd := m.fetch(m.active)
		return m, cmd

	case "n":
		if m.active == tabActivity && m.nextEnabled() && !m.loading[tabActivity] {
			cmd := m.loadActivity(m.offset + activityLimit)
			return m, cmd
		}
		return m, nil

	case "p":
		if m.active == tabActivity && m.offset > 0 && !m.loading[tabActivity] {
			next := m.offset - activityLimit
			if next < 0 {
				next = 0
			}
			cmd := m.loadActivity(next)
			return m, cmd
		}
		return m, nil

	case "s":
		if m.active == tabExport && m.raw != nil && m.cfg.SaveExport != nil {
			return m, m.cfg.SaveExport(m.raw)
		}
		return m, nil
	}

	return m, nil
}

// switchTab activates a tab and re-fetches its data. Nothing is cached: every
// visit shows a fresh read.
func (m Dashboard) switchTab(t tab) (Dashboard, tea.Cmd) {
	m.active = t
	if t == tabActivity {
		m.offset = 0
	}
	cmd := m.fetch(t)
	return m, cmd
}

// fetch marks a tab loading and returns the command that refreshes it. The
// receiver is a pointer so the loading flag lands on the model being returned.
func (m *Dashboard) fetch(t tab) tea.Cmd {
	m.loading[t] = true
	m.errMsg[t] = ""
	switch t {
	case tabOverview:
		if m.cfg.LoadStatistics != nil {
			return m.cfg.LoadStatistics()
		}
	case tabUsers:
		if m.cfg.LoadUsers != nil {
			return m.cfg.LoadUsers()
		}
	case tabSearches:
		if m.cfg.LoadSearches != nil {
			return m.cfg.LoadSearches()
		}
	case tabActivity:
		return m.loadActivity(0)
	case tabExport:
		if m.cfg.LoadExport != nil {
			return m.cfg.LoadExport()
		}
	}
	return nil
}

func (m *Dashboard) loadActivity(offset int) tea.Cmd {
	if m.cfg.LoadActivity == nil {
		return nil
	}
	m.loading[tabActivity] = true
	m.errMsg[tabActivity] = ""
	return m.cfg.LoadActivity(activityLimit, offset)
}

// nextEnabled reports whether another activity page exists past the current
// one.
func (m Dashboard) nextEnabled() bool {
	return m.offset+len(m.activities) < m.total
}

// View renders the dashboard.
func (m Dashboard) View() string {
	var body string
	switch m.active {
	case tabOverview:
		body = m.viewOverview()
	case tabUsers:
		body = m.viewUsers()
	case tabSearches:
		body = m.viewSearches()
	case tabActivity:
		body = m.viewActivity()
	case tabExport:
		body = m.viewExport()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewTabs(), body)
}

func (m Dashboard) viewTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.active {
			parts = append(parts, styles.NavActive.Render(label))
		} else {
			parts = append(parts, styles.NavInactive.Render(label))
		}
	}
	return strings.Join(parts, " · ")
}

// pane wraps tab content, preferring the tab's error over its data.
func (m Dashboard) pane(t tab, content string) string {
	if m.errMsg[t] != "" {
		return styles.PanelStyle.Render(styles.ErrorStyle.Render(m.errMsg[t]))
	}
	if m.loading[t] {
		return styles.PanelStyle.Render(styles.MutedText.Render("Loading…"))
	}
	return styles.PanelStyle.Render(content)
}

func (m Dashboard) viewOverview() string {
	if m.stats == nil {
		return m.pane(tabOverview, styles.MutedText.Render("No data."))
	}
	cards := []string{
		statCard("Total Users", fmt.Sprintf("%d", m.stats.TotalUsers)),
		statCard("Total Searches", fmt.Sprintf("%d", m.stats.TotalSearches)),
		statCard("Activity Entries", fmt.Sprintf("%d", m.stats.TotalActivities)),
	}
	return m.pane(tabOverview, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func statCard(label, value string) string {
	return styles.PanelStyle.Render(
		styles.SectionTitle.Render(label) + "\n" + styles.TitleStyle.Render(value))
}

func (m Dashboard) viewUsers() string {
	if len(m.users) == 0 {
		return m.pane(tabUsers, styles.MutedText.Render("No users."))
	}
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Users") + "\n")
	for _, u := range m.users {
		role := "user"
		if u.IsAdmin != 0 {
			role = "admin"
		}
		b.WriteString(fmt.Sprintf("%4d  %-20s %-6s %s\n",
			u.ID, u.Username, role, api.FormatTimestamp(u.CreatedAt)))
	}
	return m.pane(tabUsers, b.String())
}

func (m Dashboard) viewSearches() string {
	if len(m.searches) == 0 {
		return m.pane(tabSearches, styles.MutedText.Render("No searches."))
	}
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Searches") + "\n")
	for _, s := range m.searches {
		badge := styles.BadgeStyle.
			Foreground(styles.SentimentStyle(s.Dominant()).GetForeground()).
			Render(s.Dominant())
		b.WriteString(fmt.Sprintf("%4d  user %-4d %-24s %3d tweets  %s  %s\n",
			s.ID, s.UserID, s.Keyword, s.TweetCount, badge,
			api.FormatTimestamp(s.CreatedAt)))
	}
	return m.pane(tabSearches, b.String())
}

func (m Dashboard) viewActivity() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Activity Log") + "\n")

	if len(m.activities) == 0 {
		b.WriteString(styles.MutedText.Render("No activity.") + "\n")
	}
	for _, a := range m.activities {
		actor := a.ActorType
		if a.UserID != nil {
			actor = fmt.Sprintf("%s #%d", a.ActorType, *a.UserID)
		}
		line := fmt.Sprintf("%5d  %-18s %-12s %s", a.ID, a.Action, actor,
			api.FormatTimestamp(a.CreatedAt))
		if p := a.PayloadText(); p != "" {
			line += "  " + styles.MutedText.Render(truncate(p, 48))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.viewPager())
	return m.pane(tabActivity, b.String())
}

// viewPager renders the range line and the paging hints.
func (m Dashboard) viewPager() string {
	if m.total == 0 {
		return styles.MutedText.Render("0 of 0")
	}
	lo := m.offset + 1
	hi := m.offset + len(m.activities)
	rangeLine := fmt.Sprintf("%d–%d of %d", lo, hi, m.total)

	prev := styles.MutedText.Render("p prev")
	if m.offset > 0 {
		prev = styles.StatusBarKey.Render("p") + " prev"
	}
	next := styles.MutedText.Render("n next")
	if m.nextEnabled() {
		next = styles.StatusBarKey.Render("n") + " next"
	}
	return rangeLine + "   " + prev + "  " + next
}

func (m Dashboard) viewExport() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Data Export") + "\n")

	if m.bundle == nil {
		b.WriteString(styles.MutedText.Render("No export loaded.") + "\n")
		return m.pane(tabExport, b.String())
	}

	b.WriteString(fmt.Sprintf("Users: %d · Searches: %d · Activities: %d\n",
		len(m.bundle.Users), len(m.bundle.Searches), len(m.bundle.ActivityLog)))
	b.WriteString("\n" + styles.StatusBarKey.Render("s") + " save to file\n")
	if m.savedPath != "" {
		b.WriteString(styles.MutedText.Render("Saved to "+m.savedPath) + "\n")
	}
	return m.pane(tabExport, b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
