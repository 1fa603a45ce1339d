// Package dashboard implements the analysis workflow: pick a trending topic
// (or type a keyword), fetch candidate news items, select one, analyze it.
//
// The workflow's derived state is a strict chain: an analysis result needs a
// selected news item, a selected item needs a fetched collection, and the
// collection is scoped to exactly one keyword. Breaking any link clears
// everything downstream of it.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// TrendingLoaded is sent when the trending topics fetch finishes. A failure
// degrades to an empty list; the workflow stays usable via manual keywords.
type TrendingLoaded struct {
	Topics []api.Topic
	Err    error
}

// NewsFetched is sent when a fetch-news call finishes. Seq correlates the
// response with the request that produced it; stale responses are dropped.
type NewsFetched struct {
	Seq     int
	Items   []api.NewsItem
	Message string
	Err     error
}

// AnalysisDone is sent when an analyze call finishes. Seq as in NewsFetched.
type AnalysisDone struct {
	Seq    int
	Result *api.AnalysisResult
	Err    error
}

// Config supplies the command factories the workflow triggers. The model
// never talks to the network itself.
type Config struct {
	LoadTrending func() tea.Cmd
	FetchNews    func(keyword string, seq int) tea.Cmd
	Analyze      func(newsText, topic string, seq int) tea.Cmd

	// NextSeq issues request sequence numbers. Supplying one that outlives
	// the model keeps responses from a previous mount from being applied to
	// a fresh one. Defaults to a model-local counter.
	NextSeq func() int
}

// focusArea is which list j/k navigates.
type focusArea int

const (
	focusTopics focusArea = iota
	focusNews
)

// Model is the analysis workflow.
type Model struct {
	cfg Config

	topics        []api.Topic
	loadingTopics bool
	topicCursor   int
	selectedTopic *api.Topic

	keyword string
	input   textinput.Model
	editing bool

	newsItems    []api.NewsItem
	newsCursor   int
	selectedNews *api.NewsItem

	result *api.AnalysisResult

	fetchingNews bool
	analyzing    bool
	seq          int // local fallback counter
	fetchSeq     int // latest issued fetch-news request
	analyzeSeq   int // latest issued analyze request

	focus   focusArea
	errMsg  string
	spinner spinner.Model
	width   int
	height  int
}

// New creates the workflow model.
func New(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "custom keyword"
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		cfg:           cfg,
		loadingTopics: true,
		input:         ti,
		spinner:       s,
	}
}

// Init fetches the trending topics once.
func (m Model) Init() tea.Cmd {
	if m.cfg.LoadTrending == nil {
		return nil
	}
	return tea.Batch(m.cfg.LoadTrending(), m.spinner.Tick)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether the keyword input has focus; while editing, the
// root must forward all key events here.
func (m Model) Editing() bool {
	return m.editing
}

// Keyword returns the active keyword (for testing).
func (m Model) Keyword() string { return m.keyword }

// NewsItems returns the current collection (for testing).
func (m Model) NewsItems() []api.NewsItem { return m.newsItems }

// SelectedNews returns the selected item, or nil (for testing).
func (m Model) SelectedNews() *api.NewsItem { return m.selectedNews }

// Result returns the current analysis result, or nil (for testing).
func (m Model) Result() *api.AnalysisResult { return m.result }

// ErrMsg returns the current step-local error message (for testing).
func (m Model) ErrMsg() string { return m.errMsg }

// Busy reports whether a network step is in flight.
func (m Model) Busy() bool { return m.fetchingNews || m.analyzing }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.handleKey(msg)

	case TrendingLoaded:
		m.loadingTopics = false
		// Degrade silently; the caller logs the failure.
		if msg.Err == nil {
			m.topics = msg.Topics
		}
		return m, nil

	case NewsFetched:
		if msg.Seq != m.fetchSeq {
			// A newer fetch superseded this response.
			return m, nil
		}
		m.fetchingNews = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		if len(msg.Items) == 0 {
			if msg.Message != "" {
				m.errMsg = msg.Message
			} else {
				m.errMsg = "No news found for this topic"
			}
			return m, nil
		}
		m.newsItems = msg.Items
		m.newsCursor = 0
		m.focus = focusNews
		return m, nil

	case AnalysisDone:
		if msg.Seq != m.analyzeSeq {
			return m, nil
		}
		m.analyzing = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.result = msg.Result
		return m, nil

	case spinner.TickMsg:
		if !m.Busy() && !m.loadingTopics {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input outside editing mode.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "t":
		m.focus = focusTopics
		return m, nil

	case "n":
		if len(m.newsItems) > 0 {
			m.focus = focusNews
		}
		return m, nil

	case "/":
		m.editing = true
		m.input.SetValue(m.keyword)
		return m, m.input.Focus()

	case "enter", " ":
		return m.handleSelect()

	case "f":
		return m.fetchNews()

	case "a":
		return m.analyze()
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case focusTopics:
		next := m.topicCursor + delta
		if next >= 0 && next < len(m.topics) {
			m.topicCursor = next
		}
	case focusNews:
		next := m.newsCursor + delta
		if next >= 0 && next < len(m.newsItems) {
			m.newsCursor = next
		}
	}
}

// handleSelect selects the topic or news item under the cursor.
func (m Model) handleSelect() (Model, tea.Cmd) {
	switch m.focus {
	case focusTopics:
		if m.topicCursor < len(m.topics) {
			m.selectTopic(m.topics[m.topicCursor])
		}
	case focusNews:
		if m.newsCursor < len(m.newsItems) {
			item := m.newsItems[m.newsCursor]
			m.selectedNews = &item
			m.result = nil
			// An analysis started for the previous selection no longer has
			// a home; retire its seq so the late response cannot land.
			if m.analyzing {
				m.analyzing = false
				m.analyzeSeq = m.nextSeq()
			}
		}
	}
	return m, nil
}

// selectTopic starts a fresh chain: even re-selecting the current topic
// clears everything downstream, including interest in any response still
// in flight.
func (m *Model) selectTopic(t api.Topic) {
	m.selectedTopic = &t
	m.keyword = t.Title
	m.newsItems = nil
	m.newsCursor = 0
	m.selectedNews = nil
	m.result = nil

	if m.fetchingNews {
		m.fetchingNews = false
		m.fetchSeq = m.nextSeq()
	}
	if m.analyzing {
		m.analyzing = false
		m.analyzeSeq = m.nextSeq()
	}
}

// fetchNews starts the news retrieval step.
func (m Model) fetchNews() (Model, tea.Cmd) {
	if m.fetchingNews || m.analyzing {
		return m, nil
	}
	if strings.TrimSpace(m.keyword) == "" {
		m.errMsg = "Please select a topic first"
		return m, nil
	}

	m.errMsg = ""
	m.fetchingNews = true
	m.newsItems = nil
	m.newsCursor = 0
	m.selectedNews = nil
	m.result = nil
	m.fetchSeq = m.nextSeq()

	if m.cfg.FetchNews == nil {
		m.fetchingNews = false
		return m, nil
	}
	return m, tea.Batch(m.cfg.FetchNews(m.keyword, m.fetchSeq), m.spinner.Tick)
}

// analyze starts the sentiment analysis step.
func (m Model) analyze() (Model, tea.Cmd) {
	if m.fetchingNews || m.analyzing {
		return m, nil
	}
	if m.selectedNews == nil {
		m.errMsg = "Please select a news item to analyze"
		return m, nil
	}

	m.errMsg = ""
	m.analyzing = true
	m.analyzeSeq = m.nextSeq()

	if m.cfg.Analyze == nil {
		m.analyzing = false
		return m, nil
	}
	return m, tea.Batch(m.cfg.Analyze(m.selectedNews.Text, m.keyword, m.analyzeSeq), m.spinner.Tick)
}

func (m *Model) nextSeq() int {
	if m.cfg.NextSeq != nil {
		return m.cfg.NextSeq()
	}
	m.seq++
	return m.seq
}

// updateEditing handles keys while the keyword input has focus.
func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.keyword = strings.TrimSpace(m.input.Value())
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the workflow.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewTopics())

	if m.selectedTopic != nil || m.keyword != "" || m.editing {
		sections = append(sections, m.viewKeyword())
	}
	if len(m.newsItems) > 0 || m.fetchingNews {
		sections = append(sections, m.viewNews())
	}
	if m.selectedNews != nil || m.analyzing {
		sections = append(sections, m.viewAnalysis())
	}
	if m.result != nil {
		sections = append(sections, m.viewResult())
	}

	if m.errMsg != "" {
		sections = append(sections, styles.ErrorStyle.Render(m.errMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTopics() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Trending Topics & News") + "\n")
	b.WriteString(styles.MutedText.Render("Select a topic, or press / to enter a keyword.") + "\n")

	if m.loadingTopics {
		b.WriteString(m.spinner.View() + " Loading topics...")
		return styles.PanelStyle.Render(b.String())
	}
	if len(m.topics) == 0 {
		b.WriteString(styles.MutedText.Render("No trending topics available."))
		return styles.PanelStyle.Render(b.String())
	}

	for i, t := range m.topics {
		line := fmt.Sprintf("%s  %s", t.Title, styles.MutedText.Render(t.Category))
		marker := "  "
		if m.selectedTopic != nil && m.selectedTopic.ID == t.ID {
			marker = "● "
		}
		if m.focus == focusTopics && i == m.topicCursor {
			b.WriteString(styles.SelectedItem.Render(marker+t.Title) + "  " + styles.MutedText.Render(t.Category))
		} else {
			b.WriteString(styles.NormalItem.Render(marker) + line)
		}
		if i < len(m.topics)-1 {
			b.WriteString("\n")
		}
	}

	return styles.PanelStyle.Render(b.String())
}

func (m Model) viewKeyword() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Fetch News") + "\n")
	if m.editing {
		b.WriteString("Keyword: " + m.input.View() + "\n")
		b.WriteString(styles.MutedText.Render("enter confirm · esc cancel"))
	} else {
		b.WriteString("Keyword: " + styles.NormalItem.Render(m.keyword) + "\n")
		if m.fetchingNews {
			b.WriteString(m.spinner.View() + " Fetching News…")
		} else {
			b.WriteString(styles.MutedText.Render("f fetch news · / edit keyword"))
		}
	}
	return styles.PanelStyle.Render(b.String())
}

func (m Model) viewNews() string {
	var b strings.Builder
	if m.fetchingNews {
		b.WriteString(styles.SectionTitle.Render("News Items") + "\n")
		b.WriteString(m.spinner.View() + " Fetching News…")
		return styles.PanelStyle.Render(b.String())
	}

	b.WriteString(styles.SectionTitle.Render(fmt.Sprintf("News Items (%d found)", len(m.newsItems))) + "\n")
	b.WriteString(styles.MutedText.Render("Select a news item to analyze its sentiment") + "\n")

	for i, item := range m.newsItems {
		text := truncate(item.Text, m.lineWidth())
		marker := "  "
		if m.selectedNews != nil && m.selectedNews.ID == item.ID {
			marker = "✓ "
		}
		if m.focus == focusNews && i == m.newsCursor {
			b.WriteString(styles.SelectedItem.Render(marker + text))
		} else {
			b.WriteString(styles.NormalItem.Render(marker + text))
		}
		if i < len(m.newsItems)-1 {
			b.WriteString("\n")
		}
	}

	return styles.PanelStyle.Render(b.String())
}

func (m Model) viewAnalysis() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Sentiment Analysis") + "\n")
	if m.selectedNews != nil {
		b.WriteString(styles.MutedText.Render("Selected: "+truncate(m.selectedNews.Text, 50)) + "\n")
	}
	if m.analyzing {
		b.WriteString(m.spinner.View() + " Analyzing…")
	} else {
		b.WriteString(styles.MutedText.Render("a analyze sentiment"))
	}
	return styles.PanelStyle.Render(b.String())
}

func (m Model) viewResult() string {
	r := m.result
	var b strings.Builder

	topicLine := "Analysis Result"
	if r.Topic != "" {
		topicLine = "Topic: " + r.Topic
	}
	b.WriteString(styles.SectionTitle.Render("Result") + "  " + styles.MutedText.Render(topicLine) + "\n\n")

	// Percentages come from the backend already normalized; render verbatim.
	b.WriteString(renderSentimentBar(r.Sentiment, m.lineWidth()) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		styles.PositiveStyle.Render(fmt.Sprintf("Positive %v%%", r.Sentiment.Positive)),
		styles.NeutralStyle.Render(fmt.Sprintf("Neutral %v%%", r.Sentiment.Neutral)),
		styles.NegativeStyle.Render(fmt.Sprintf("Negative %v%%", r.Sentiment.Negative)),
	))

	label := r.Classification
	if label == "" {
		label = r.Sentiment.Dominant()
	}
	classification := styles.SentimentStyle(label).Render(capitalize(label))
	if r.Confidence > 0 {
		classification += styles.MutedText.Render(fmt.Sprintf(" (%v%% confidence)", r.Confidence))
	}
	b.WriteString("Classification: " + classification + "\n")

	if r.Explanation != "" {
		b.WriteString("\n" + styles.SectionTitle.Render("Explanation") + "\n")
		b.WriteString(wrapText(r.Explanation, m.lineWidth()) + "\n")
	}

	if len(r.KeyWords.Positive) > 0 {
		b.WriteString("\nPositive words: " + styles.PositiveStyle.Render(strings.Join(r.KeyWords.Positive, ", ")) + "\n")
	}
	if len(r.KeyWords.Negative) > 0 {
		b.WriteString("Negative words: " + styles.NegativeStyle.Render(strings.Join(r.KeyWords.Negative, ", ")) + "\n")
	}

	if r.FullText != "" {
		b.WriteString("\n" + styles.MutedText.Render("Analyzed news item:") + "\n")
		b.WriteString(wrapText(r.FullText, m.lineWidth()))
	}

	return styles.PanelStyle.Render(b.String())
}

// renderSentimentBar draws a proportional three-segment bar. The segments use
// the backend's percentages directly.
func renderSentimentBar(s api.Sentiment, width int) string {
	if width < 10 {
		width = 10
	}
	pos := int(s.Positive * float64(width) / 100)
	neg := int(s.Negative * float64(width) / 100)
	neu := width - pos - neg
	if neu < 0 {
		neu = 0
	}

	return styles.PositiveStyle.Render(strings.Repeat("█", pos)) +
		styles.NeutralStyle.Render(strings.Repeat("█", neu)) +
		styles.NegativeStyle.Render(strings.Repeat("█", neg))
}

func (m Model) lineWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 60
	}
	return w
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// wrapText wraps text to a given width, preserving paragraph breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	var wrapped []string

	for _, para := range paragraphs {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}

		var lines []string
		current := ""
		for _, word := range strings.Fields(para) {
			switch {
			case current == "":
				current = word
			case len(current)+1+len(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
		wrapped = append(wrapped, strings.Join(lines, "\n"))
	}

	return strings.Join(wrapped, "\n\n")
}
