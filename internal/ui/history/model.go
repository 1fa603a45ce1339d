// Package history shows the user's past analyses with aggregate stats.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// Loaded is sent when the history fetch finishes.
type Loaded struct {
	History *api.History
	Err     error
}

// Model is the history view. It fetches on every mount; nothing is cached
// across view switches.
type Model struct {
	load func() tea.Cmd

	history *api.History
	loading bool
	errMsg  string
	cursor  int
	spinner spinner.Model
	width   int
	height  int
}

// New creates the history view.
func New(load func() tea.Cmd) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	return Model{
		load:    load,
		loading: true,
		spinner: s,
	}
}

// Init fetches the history.
func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return tea.Batch(m.load(), m.spinner.Tick)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Loading reports whether a fetch is in flight (for testing).
func (m Model) Loading() bool { return m.loading }

// ErrMsg returns the view-local error message (for testing).
func (m Model) ErrMsg() string { return m.errMsg }

// History returns the loaded data, or nil (for testing).
func (m Model) History() *api.History { return m.history }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			// Manual refresh; retry is always re-issuing the same fetch.
			if m.loading || m.load == nil {
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.load(), m.spinner.Tick)

		case "j", "down":
			if m.history != nil && m.cursor < len(m.history.Searches)-1 {
				m.cursor++
			}
			return m, nil

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

	case Loaded:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.history = msg.History
		if m.cursor >= len(m.history.Searches) {
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the history.
func (m Model) View() string {
	if m.loading {
		return styles.PanelStyle.Render(m.spinner.View() + " Loading history...")
	}
	if m.errMsg != "" {
		return styles.PanelStyle.Render(
			styles.ErrorStyle.Render(m.errMsg) + "\n" +
				styles.MutedText.Render("r retry"))
	}
	if m.history == nil {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewStats(), m.viewSearches())
}

func (m Model) viewStats() string {
	s := m.history.Statistics
	cards := []string{
		statCard("Total Searches", fmt.Sprintf("%d", s.TotalSearches), styles.NormalItem),
		statCard("Tweets Analyzed", fmt.Sprintf("%d", s.TotalTweetsAnalyzed), styles.NormalItem),
		statCard("Avg Positive", fmt.Sprintf("%.1f%%", s.AverageSentiment.Positive), styles.PositiveStyle),
		statCard("Avg Negative", fmt.Sprintf("%.1f%%", s.AverageSentiment.Negative), styles.NegativeStyle),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(title, value string, valueStyle lipgloss.Style) string {
	return styles.PanelStyle.Render(
		styles.MutedText.Render(title) + "\n" + valueStyle.Render(value))
}

func (m Model) viewSearches() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Search History") + "  " +
		styles.MutedText.Render("r refresh") + "\n")

	searches := m.history.Searches
	if len(searches) == 0 {
		b.WriteString(styles.MutedText.Render("No search history yet. Start analyzing news items!"))
		return styles.PanelStyle.Render(b.String())
	}

	for i, s := range searches {
		badge := styles.BadgeStyle.
			Foreground(sentimentColor(s.Dominant())).
			Render(strings.ToUpper(s.Dominant()))

		line := fmt.Sprintf("%s %s  %s",
			s.Keyword,
			badge,
			styles.MutedText.Render(api.FormatTimestamp(s.CreatedAt)))
		detail := fmt.Sprintf("  Tweets: %d  Pos: %.1f%%  Neu: %.1f%%  Neg: %.1f%%",
			s.TweetCount, s.Positive, s.Neutral, s.Negative)

		if i == m.cursor {
			b.WriteString(styles.SelectedItem.Render(s.Keyword) + " " + badge + "  " +
				styles.MutedText.Render(api.FormatTimestamp(s.CreatedAt)))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n" + styles.MutedText.Render(detail))
		if i < len(searches)-1 {
			b.WriteString("\n")
		}
	}

	return styles.PanelStyle.Render(b.String())
}

func sentimentColor(label string) lipgloss.Color {
	switch label {
	case "positive":
		return styles.ColorPositive
	case "negative":
		return styles.ColorNegative
	default:
		return styles.ColorNeutral
	}
}
