package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginState struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
	pending  bool
	errMsg   string
}

func newLoginState() loginState {
	u := textinput.New()
	u.Placeholder = "Логин"
	u.CharLimit = 64
	u.Width = 28
	u.Focus()

	p := textinput.New()
	p.Placeholder = "Пароль"
	p.CharLimit = 64
	p.Width = 28
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	return loginState{username: u, password: p}
}

func (l *loginState) applyFocus() {
	if l.focus == 0 {
		l.username.Focus()
		l.password.Blur()
	} else {
		l.username.Blur()
		l.password.Focus()
	}
}

// toggleLogin opens the login modal for guests and logs an authenticated
// session out. Logout clears locally first; the server call is best effort.
func (m appModel) toggleLogin() (tea.Model, tea.Cmd) {
	if m.token == "" {
		m.modal = modalLogin
		m.login = newLoginState()
		return m, nil
	}
	m.token = ""
	_ = m.store.ClearToken()
	c := m.client
	return m, func() tea.Msg {
		_ = c.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.pending {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.login = newLoginState()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.login.focus = 1 - m.login.focus
		m.login.applyFocus()
		return m, nil
	case "enter":
		if m.login.focus == 0 {
			m.login.focus = 1
			m.login.applyFocus()
			return m, nil
		}
		m.login.pending = true
		m.login.errMsg = ""
		return m, m.loginCmd(m.nextSeq(), m.login.username.Value(), m.login.password.Value())
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) loginCmd(seq int, username, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		tok, err := c.Login(context.Background(), username, password)
		return loginDoneMsg{seq: seq, token: tok, err: err}
	}
}

func (m appModel) viewLoginModal() string {
	var b strings.Builder
	b.WriteString(renderInputLine(30, m.login.username.View()))
	b.WriteString("\n")
	b.WriteString(renderInputLine(30, m.login.password.View()))
	b.WriteString("\n")
	if m.login.pending {
		b.WriteString(styleMuted().Render("Вход…"))
		b.WriteString("\n")
	} else if m.login.errMsg != "" {
		b.WriteString(styleError().Render(m.login.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter: войти   tab: поле   esc: закрыть"))
	return renderModalBox(m.width, "Вход", b.String())
}
