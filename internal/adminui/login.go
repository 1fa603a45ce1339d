package adminui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nisarhm/tweetsense/internal/ui/auth"
	"github.com/nisarhm/tweetsense/internal/ui/styles"
)

// login is the admin credential form.
type login struct {
	submit auth.Submit

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string
}

func newLogin(submit auth.Submit) login {
	user := textinput.New()
	user.Placeholder = "admin"
	user.CharLimit = 64
	user.Width = 32
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return login{
		submit:   submit,
		username: user,
		password: pass,
	}
}

func (m login) Init() tea.Cmd {
	return textinput.Blink
}

func (m login) Update(msg tea.Msg) (login, tea.Cmd) {
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

		case "enter":
			if m.busy {
				return m, nil
			}
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()
			if username == "" || password == "" {
				m.errMsg = "username and password required"
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.submit(username, password)
		}

	case LoginDone:
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

func (m login) View() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Admin Login") + "\n")
	b.WriteString(styles.MutedText.Render("Operator access only.") + "\n\n")
	b.WriteString("Username\n" + m.username.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n\n")

	if m.errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(m.errMsg) + "\n\n")
	}
	if m.busy {
		b.WriteString(styles.MutedText.Render("Signing in…") + "\n")
	} else {
		b.WriteString(styles.MutedText.Render("enter login · tab switch field") + "\n")
	}

	return styles.PanelStyle.Render(b.String())
}
