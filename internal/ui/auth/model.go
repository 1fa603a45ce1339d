// Package auth provides the login and signup forms.
package auth

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/api"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// Done is sent when a login or signup attempt finishes.
type Done struct {
	User *api.User
	Err  error
}

// Submit returns a Cmd that performs the login or signup call and yields Done.
type Submit func(username, password string) tea.Cmd

// Model is the login/signup form.
type Model struct {
	mode   Mode
	login  Submit
	signup Submit

	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
	busy     bool
	errMsg   string
}

// New creates the form in login mode.
func New(login, signup Submit) Model {
	user := textinput.New()
	user.Placeholder = "e.g. nisar"
	user.CharLimit = 64
	user.Width = 32
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{
		mode:     ModeLogin,
		login:    login,
		signup:   signup,
		username: user,
		password: pass,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the current form mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Busy reports whether a submit is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// ErrMsg returns the current inline error (for testing).
func (m Model) ErrMsg() string {
	return m.errMsg
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()

		case "ctrl+t":
			// Switch between login and signup; errors are form-local.
			if m.mode == ModeLogin {
				m.mode = ModeSignup
			} else {
				m.mode = ModeLogin
			}
			m.errMsg = ""
			return m, nil

		case "enter":
			return m.submit()
		}

	case Done:
		m.busy = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errMsg = "username and password are required"
		return m, nil
	}

	m.busy = true
	m.errMsg = ""
	if m.mode == ModeSignup {
		return m, m.signup(username, password)
	}
	return m, m.login(username, password)
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	title := "Login"
	hint := "Sign in to access the sentiment dashboard."
	action := "Login"
	busyText := "Signing in…"
	switchHint := "ctrl+t create account"
	if m.mode == ModeSignup {
		title = "Signup"
		hint = "Create an account to start analyzing."
		action = "Sign up"
		busyText = "Creating account…"
		switchHint = "ctrl+t back to login"
	}

	b.WriteString(styles.SectionTitle.Render(title) + "\n")
	b.WriteString(styles.MutedText.Render(hint) + "\n\n")
	b.WriteString("Username\n" + m.username.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n\n")

	if m.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(m.errMsg) + "\n\n")
	}

	if m.busy {
		b.WriteString(styles.MutedText.Render(busyText) + "\n")
	} else {
		b.WriteString(styles.MutedText.Render("enter "+action+" · tab switch field · "+switchHint) + "\n")
	}

	return styles.PanelStyle.Render(b.String())
}

// SetWidth adjusts the form width.
func (m *Model) SetWidth(width int) {
	w := width - 8
	if w > 48 {
		w = 48
	}
	if w < 16 {
		w = 16
	}
	m.username.Width = w
	m.password.Width = w
}
