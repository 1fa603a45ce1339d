package styles

import "github.com/charmbracelet/lipgloss"

// Colors used across both surfaces.
var (
	ColorPrimary  = lipgloss.Color("62")  // Purple
	ColorMuted    = lipgloss.Color("241") // Gray
	ColorPositive = lipgloss.Color("78")  // Green
	ColorNeutral  = lipgloss.Color("67")  // Slate blue
	ColorNegative = lipgloss.Color("196") // Red
)

// TitleStyle for the app header.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// SubtitleStyle for the line under the header.
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

// NavActive style for the active view name in the header.
var NavActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// NavInactive style for the other view names.
var NavInactive = lipgloss.NewStyle().
	Foreground(ColorMuted)

// PanelStyle for bordered content sections.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// SectionTitle for panel headings.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPrimary)

// SelectedItem style for the currently highlighted list entry.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(ColorPrimary).
	Padding(0, 1)

// NormalItem style for unselected list entries.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Padding(0, 1)

// MutedText for secondary information.
var MutedText = lipgloss.NewStyle().
	Foreground(ColorMuted)

// ErrorStyle for inline error messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorNegative)

// PositiveStyle for positive sentiment values.
var PositiveStyle = lipgloss.NewStyle().
	Foreground(ColorPositive).
	Bold(true)

// NeutralStyle for neutral sentiment values.
var NeutralStyle = lipgloss.NewStyle().
	Foreground(ColorNeutral).
	Bold(true)

// NegativeStyle for negative sentiment values.
var NegativeStyle = lipgloss.NewStyle().
	Foreground(ColorNegative).
	Bold(true)

// BadgeStyle for the dominant sentiment badge; colorize with Foreground.
var BadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBar style for the bottom key-hint bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key names in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(lipgloss.Color("212")).
	Bold(true)

// SentimentStyle returns the style for a sentiment label.
func SentimentStyle(label string) lipgloss.Style {
	switch label {
	case "positive":
		return PositiveStyle
	case "negative":
		return NegativeStyle
	default:
		return NeutralStyle
	}
}
