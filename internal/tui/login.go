package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/auth"
)

type loginDoneMsg struct {
	result auth.Result
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// loginModel is the sign-in / register form. Register is the same form with
// one extra field; a successful register signs the user in.
type loginModel struct {
	auth *auth.Service

	registering bool
	field       int
	name        string
	email       string
	password    string

	submitting bool
	errMsg     string
	notice     string

	width  int
	height int
}

func newLoginModel(svc *auth.Service) loginModel {
	return loginModel{auth: svc, field: fieldEmail}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

// setNotice shows a one-shot banner above the form, e.g. after a redirect.
func (m loginModel) setNotice(s string) loginModel {
	m.notice = s
	return m
}

func (m loginModel) isEditing() bool {
	return true // the form always owns keystrokes
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.result.OK {
			m.password = ""
			m.errMsg = ""
			m.notice = msg.result.Message
		} else {
			m.errMsg = msg.result.Message
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.field = m.nextField(1)
	case "shift+tab", "up":
		m.field = m.nextField(-1)
	case "ctrl+r":
		m.registering = !m.registering
		m.errMsg = ""
		if !m.registering && m.field == fieldName {
			m.field = fieldEmail
		}
	case "enter":
		return m.submit()
	default:
		switch m.field {
		case fieldName:
			m.name = editRune(m.name, msg.String())
		case fieldEmail:
			m.email = editRune(m.email, msg.String())
		case fieldPassword:
			m.password = editRune(m.password, msg.String())
		}
	}
	return m, nil
}

func (m loginModel) nextField(dir int) int {
	first := fieldEmail
	if m.registering {
		first = fieldName
	}
	f := m.field + dir
	if f > fieldPassword {
		f = first
	}
	if f < first {
		f = fieldPassword
	}
	return f
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.email == "" || m.password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}
	if m.registering && m.name == "" {
		m.errMsg = "name is required"
		return m, nil
	}

	// submitting stays set until loginDoneMsg so enter can't double-fire.
	m.submitting = true
	m.errMsg = ""
	svc := m.auth
	registering, name, email, password := m.registering, m.name, m.email, m.password
	return m, func() tea.Msg {
		if registering {
			return loginDoneMsg{result: svc.Register(context.Background(), name, email, password)}
		}
		return loginDoneMsg{result: svc.Login(context.Background(), email, password)}
	}
}

func (m loginModel) View() string {
	var sb strings.Builder

	title := "SIGN IN"
	if m.registering {
		title = "CREATE ACCOUNT"
	}
	sb.WriteString(" " + sectionHeaderStyle.Render(title) + "\n")

	if m.notice != "" {
		sb.WriteString(" " + pendingStyle.Render(m.notice) + "\n")
	}
	sb.WriteString("\n")

	if m.registering {
		sb.WriteString(m.renderField("name", m.name, fieldName, false))
	}
	sb.WriteString(m.renderField("email", m.email, fieldEmail, false))
	sb.WriteString(m.renderField("password", m.password, fieldPassword, true))

	sb.WriteString("\n")
	switch {
	case m.submitting:
		sb.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		sb.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n " + helpEntry("enter", "submit") + "  " + helpEntry("tab", "next field"))
	if m.registering {
		sb.WriteString("  " + helpEntry("ctrl+r", "sign in instead"))
	} else {
		sb.WriteString("  " + helpEntry("ctrl+r", "register instead"))
	}
	return sb.String()
}

func (m loginModel) renderField(label, value string, field int, mask bool) string {
	prompt := "  "
	if m.field == field {
		prompt = inputPromptStyle.Render("> ")
	}
	shown := value
	if mask {
		shown = strings.Repeat("•", len([]rune(value)))
	}
	if shown == "" {
		shown = inputPlaceholderStyle.Render("(" + label + ")")
	} else {
		shown = normalStyle.Render(shown)
	}
	cursor := ""
	if m.field == field && !m.submitting {
		cursor = accentStyle.Render("█")
	}
	return " " + prompt + dimStyle.Render(padLabel(label)) + shown + cursor + "\n"
}

func padLabel(s string) string {
	for len(s) < 10 {
		s += " "
	}
	return s
}
