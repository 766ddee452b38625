package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/auth"
	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// signOutMsg asks the root model to log out and leave the protected views.
type signOutMsg struct{}

type myOrdersLoadedMsg struct {
	orders []domain.Order
	err    error
}

type profileSavedMsg struct {
	user *domain.User
	err  error
}

// accountModel shows the signed-in profile, an inline edit form, and the
// user's order history.
type accountModel struct {
	client *client.Client
	auth   *auth.Service
	store  *session.Store

	orders  []domain.Order
	cursor  int
	loading bool
	err     string

	editing   bool
	editField int // fieldName or fieldEmail
	editName  string
	editEmail string
	saving    bool

	statusMsg string
	width     int
	height    int
}

func newAccountModel(c *client.Client, svc *auth.Service, store *session.Store) accountModel {
	return accountModel{client: c, auth: svc, store: store, loading: true}
}

func (m accountModel) Init() tea.Cmd {
	return m.load()
}

func (m accountModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		orders, err := c.ListMyOrders(context.Background())
		return myOrdersLoadedMsg{orders: orders, err: err}
	}
}

func (m accountModel) isEditing() bool {
	return m.editing
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case myOrdersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.orders = msg.orders
			m.err = ""
			if m.cursor >= len(m.orders) {
				m.cursor = 0
			}
		}
		return m, nil

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.statusMsg = ""
			m.err = "could not save profile: " + msg.err.Error()
			return m, nil
		}
		// The server confirmed; only now does the session absorb the change.
		if _, err := m.auth.UpdateProfile(domain.ProfilePatch{Name: msg.user.Name, Email: msg.user.Email}); err != nil {
			m.err = "profile saved, session not updated: " + err.Error()
			return m, nil
		}
		m.editing = false
		m.err = ""
		m.statusMsg = "profile updated"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m accountModel) updateKeys(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	if m.editing {
		return m.updateEditKeys(msg)
	}
	m.statusMsg = ""

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.orders)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "e":
		u, ok := m.store.User()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editField = fieldName
		m.editName = u.Name
		m.editEmail = u.Email
		m.err = ""
	case "c":
		if m.cursor < len(m.orders) {
			id := m.orders[m.cursor].ID
			if err := clipboard.WriteAll(id); err != nil {
				m.statusMsg = "clipboard unavailable"
			} else {
				m.statusMsg = "copied order " + shortID(id)
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "s":
		return m, func() tea.Msg { return signOutMsg{} }
	}
	return m, nil
}

func (m accountModel) updateEditKeys(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.editing = false
		m.err = ""
	case "tab", "shift+tab", "down", "up":
		if m.editField == fieldName {
			m.editField = fieldEmail
		} else {
			m.editField = fieldName
		}
	case "ctrl+s", "enter":
		return m.saveProfile()
	default:
		if m.editField == fieldName {
			m.editName = editRune(m.editName, msg.String())
		} else {
			m.editEmail = editRune(m.editEmail, msg.String())
		}
	}
	return m, nil
}

func (m accountModel) saveProfile() (accountModel, tea.Cmd) {
	if m.editName == "" || m.editEmail == "" {
		m.err = "name and email cannot be empty"
		return m, nil
	}
	m.saving = true
	m.err = ""
	c := m.client
	patch := domain.ProfilePatch{Name: m.editName, Email: m.editEmail}
	return m, func() tea.Msg {
		user, err := c.UpdateProfile(context.Background(), patch)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m accountModel) View() string {
	var sb strings.Builder

	u, ok := m.store.User()
	if !ok {
		return " " + dimStyle.Render("no session")
	}

	sb.WriteString(" " + sectionHeaderStyle.Render("ACCOUNT") + "\n")
	if m.editing {
		sb.WriteString(m.editView())
	} else {
		name := selectedStyle.Render(u.Name)
		if u.IsAdmin {
			name += "  " + adminBadgeStyle.Render("ADMIN")
		}
		sb.WriteString("   " + name + "\n")
		sb.WriteString("   " + dimStyle.Render(u.Email) + "\n")
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("YOUR ORDERS") + "\n")
	switch {
	case m.loading && len(m.orders) == 0:
		sb.WriteString("   " + dimStyle.Render("loading orders..."))
	case m.err != "" && !m.editing:
		sb.WriteString("   " + errStyle.Render(m.err))
	case len(m.orders) == 0:
		sb.WriteString("   " + dimStyle.Render("no orders yet"))
	default:
		for i, o := range m.orders {
			cursor := "  "
			idStyle := normalStyle
			if i == m.cursor && !m.editing {
				cursor = accentStyle.Render("> ")
				idStyle = selectedStyle
			}
			status := pendingStyle.Render("pending")
			if o.IsDelivered {
				status = deliveredStyle.Render("delivered")
			}
			sb.WriteString(fmt.Sprintf(" %s%s  %s  %s  %s  %s\n",
				cursor,
				idStyle.Render(shortID(o.ID)),
				dimStyle.Render(fmt.Sprintf("%d item(s)", o.ItemCount())),
				priceStyle.Render(fmt.Sprintf("%9s", money(o.TotalPrice))),
				status,
				metaStyle.Render(formatTime(o.CreatedAt))))
		}
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg))
	}
	return sb.String()
}

func (m accountModel) editView() string {
	var sb strings.Builder
	fields := []struct {
		label string
		value string
		field int
	}{
		{"name", m.editName, fieldName},
		{"email", m.editEmail, fieldEmail},
	}
	for _, f := range fields {
		prompt := "  "
		if m.editField == f.field {
			prompt = inputPromptStyle.Render("> ")
		}
		cursor := ""
		if m.editField == f.field && !m.saving {
			cursor = accentStyle.Render("█")
		}
		sb.WriteString("   " + prompt + dimStyle.Render(padLabel(f.label)) + normalStyle.Render(f.value) + cursor + "\n")
	}
	if m.saving {
		sb.WriteString("   " + dimStyle.Render("saving...") + "\n")
	} else if m.err != "" {
		sb.WriteString("   " + errStyle.Render(m.err) + "\n")
	}
	sb.WriteString("   " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel") + "\n")
	return sb.String()
}
