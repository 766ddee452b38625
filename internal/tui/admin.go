package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

type adminSection int

const (
	sectionOrders adminSection = iota
	sectionUsers
	sectionDeals
	sectionSlides
	sectionCount
)

func (s adminSection) String() string {
	switch s {
	case sectionOrders:
		return "orders"
	case sectionUsers:
		return "users"
	case sectionDeals:
		return "deals"
	case sectionSlides:
		return "slides"
	}
	return "?"
}

type adminLoadedMsg struct {
	orders []domain.Order
	users  []domain.User
	deals  []domain.Deal
	slides []domain.Slide
	err    error
}

// adminActionMsg reports the outcome of a mutation; on success the section
// data is reloaded.
type adminActionMsg struct {
	done string
	err  error
}

// adminModel is the admin-only back office: orders, users, deals and slides.
type adminModel struct {
	client *client.Client
	store  *session.Store

	section adminSection
	cursor  int
	loading bool
	err     string

	orders []domain.Order
	users  []domain.User
	deals  []domain.Deal
	slides []domain.Slide

	// New-deal form
	creating  bool
	dealField int
	dealForm  [4]string // title, category, discount, days

	statusMsg string
	width     int
	height    int
}

func newAdminModel(c *client.Client, store *session.Store) adminModel {
	return adminModel{client: c, store: store, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return m.load()
}

func (m adminModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		orders, err := c.ListOrders(context.Background())
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		users, err := c.ListUsers(context.Background())
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		deals, err := c.ListDeals(context.Background())
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		slides, err := c.ListSlides(context.Background())
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		return adminLoadedMsg{orders: orders, users: users, deals: deals, slides: slides}
	}
}

func (m adminModel) isEditing() bool {
	return m.creating
}

func (m adminModel) sectionLen() int {
	switch m.section {
	case sectionOrders:
		return len(m.orders)
	case sectionUsers:
		return len(m.users)
	case sectionDeals:
		return len(m.deals)
	case sectionSlides:
		return len(m.slides)
	}
	return 0
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.orders = msg.orders
			m.users = msg.users
			m.deals = msg.deals
			m.slides = msg.slides
			m.err = ""
			if m.cursor >= m.sectionLen() {
				m.cursor = 0
			}
		}
		return m, nil

	case adminActionMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.statusMsg = msg.done
		m.loading = true
		return m, m.load()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m adminModel) updateKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.creating {
		return m.updateDealFormKeys(msg)
	}
	m.statusMsg = ""

	switch msg.String() {
	case "tab", "l":
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0
	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0
	case "j", "down":
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "c":
		if id, ok := m.selectedID(); ok {
			if err := clipboard.WriteAll(id); err != nil {
				m.statusMsg = "clipboard unavailable"
			} else {
				m.statusMsg = "copied " + shortID(id)
			}
		}
	case "enter", "d":
		return m.primaryAction()
	case "x":
		return m.deleteAction()
	case "n":
		if m.section == sectionDeals {
			m.creating = true
			m.dealField = 0
			m.dealForm = [4]string{"", "", "10", "7"}
			m.err = ""
		}
	}
	return m, nil
}

func (m adminModel) selectedID() (string, bool) {
	if m.cursor >= m.sectionLen() {
		return "", false
	}
	switch m.section {
	case sectionOrders:
		return m.orders[m.cursor].ID, true
	case sectionUsers:
		return m.users[m.cursor].ID, true
	case sectionDeals:
		return m.deals[m.cursor].ID, true
	case sectionSlides:
		return m.slides[m.cursor].ID, true
	}
	return "", false
}

// primaryAction is the per-section "enter" verb: deliver an order, or toggle
// a user's admin flag.
func (m adminModel) primaryAction() (adminModel, tea.Cmd) {
	c := m.client
	switch m.section {
	case sectionOrders:
		if m.cursor >= len(m.orders) {
			return m, nil
		}
		o := m.orders[m.cursor]
		if o.IsDelivered {
			m.statusMsg = "order " + shortID(o.ID) + " is already delivered"
			return m, nil
		}
		return m, func() tea.Msg {
			err := c.DeliverOrder(context.Background(), o.ID)
			return adminActionMsg{done: "order " + shortID(o.ID) + " delivered", err: err}
		}
	case sectionUsers:
		if m.cursor >= len(m.users) {
			return m, nil
		}
		u := m.users[m.cursor]
		if self, ok := m.store.User(); ok && self.ID == u.ID {
			m.statusMsg = "refusing to change your own admin flag"
			return m, nil
		}
		grant := !u.IsAdmin
		verb := "revoked admin from"
		if grant {
			verb = "granted admin to"
		}
		return m, func() tea.Msg {
			err := c.SetUserAdmin(context.Background(), u.ID, grant)
			return adminActionMsg{done: verb + " " + u.Name, err: err}
		}
	}
	return m, nil
}

// deleteAction is the per-section "x" verb: delete a user, deal or slide.
func (m adminModel) deleteAction() (adminModel, tea.Cmd) {
	c := m.client
	switch m.section {
	case sectionUsers:
		if m.cursor >= len(m.users) {
			return m, nil
		}
		u := m.users[m.cursor]
		if self, ok := m.store.User(); ok && self.ID == u.ID {
			m.statusMsg = "refusing to delete your own account"
			return m, nil
		}
		return m, func() tea.Msg {
			err := c.DeleteUser(context.Background(), u.ID)
			return adminActionMsg{done: "deleted user " + u.Name, err: err}
		}
	case sectionDeals:
		if m.cursor >= len(m.deals) {
			return m, nil
		}
		d := m.deals[m.cursor]
		return m, func() tea.Msg {
			err := c.DeleteDeal(context.Background(), d.ID)
			return adminActionMsg{done: "deleted deal " + truncStr(d.Title, 30), err: err}
		}
	case sectionSlides:
		if m.cursor >= len(m.slides) {
			return m, nil
		}
		s := m.slides[m.cursor]
		return m, func() tea.Msg {
			err := c.DeleteSlide(context.Background(), s.ID)
			return adminActionMsg{done: "deleted slide " + truncStr(s.Title, 30), err: err}
		}
	}
	return m, nil
}

var dealFormLabels = [4]string{"title", "category", "discount %", "runs (days)"}

func (m adminModel) updateDealFormKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		m.err = ""
	case "tab", "down":
		m.dealField = (m.dealField + 1) % len(m.dealForm)
	case "shift+tab", "up":
		m.dealField = (m.dealField + len(m.dealForm) - 1) % len(m.dealForm)
	case "enter", "ctrl+s":
		return m.submitDeal()
	default:
		m.dealForm[m.dealField] = editRune(m.dealForm[m.dealField], msg.String())
	}
	return m, nil
}

func (m adminModel) submitDeal() (adminModel, tea.Cmd) {
	title := strings.TrimSpace(m.dealForm[0])
	category := strings.TrimSpace(m.dealForm[1])
	if title == "" {
		m.err = "title is required"
		return m, nil
	}
	if category != "" && !domain.ValidCategory(category) {
		m.err = "unknown category: " + category
		return m, nil
	}
	discount, err := strconv.Atoi(strings.TrimSpace(m.dealForm[2]))
	if err != nil || discount < 1 || discount > 90 {
		m.err = "discount must be 1-90"
		return m, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(m.dealForm[3]))
	if err != nil || days < 1 {
		m.err = "run length must be at least 1 day"
		return m, nil
	}

	now := time.Now()
	req := client.CreateDealRequest{
		Title:    title,
		Category: category,
		Discount: discount,
		StartsAt: now,
		EndsAt:   now.AddDate(0, 0, days),
	}
	m.creating = false
	m.err = ""
	c := m.client
	return m, func() tea.Msg {
		_, err := c.CreateDeal(context.Background(), req)
		return adminActionMsg{done: "created deal " + truncStr(title, 30), err: err}
	}
}

func (m adminModel) View() string {
	var sb strings.Builder

	// Section tabs
	var tabs []string
	for s := adminSection(0); s < sectionCount; s++ {
		label := s.String()
		if s == m.section {
			tabs = append(tabs, adminBadgeStyle.Render(label))
		} else {
			tabs = append(tabs, metaStyle.Render(label))
		}
	}
	sb.WriteString(" " + strings.Join(tabs, dimStyle.Render(" · ")) + "\n\n")

	if m.creating {
		sb.WriteString(m.dealFormView())
		return sb.String()
	}

	switch {
	case m.loading && m.sectionLen() == 0:
		sb.WriteString(" " + dimStyle.Render("loading..."))
	case m.err != "":
		sb.WriteString(" " + errStyle.Render("error: "+m.err))
	default:
		sb.WriteString(m.sectionView())
	}

	if m.statusMsg != "" {
		sb.WriteString("\n\n " + okStyle.Render(m.statusMsg))
	}
	return sb.String()
}

func (m adminModel) sectionView() string {
	var sb strings.Builder
	row := func(i int, s string) {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		sb.WriteString(" " + cursor + s + "\n")
	}

	switch m.section {
	case sectionOrders:
		if len(m.orders) == 0 {
			return " " + dimStyle.Render("no orders")
		}
		for i, o := range m.orders {
			status := pendingStyle.Render("pending  ")
			if o.IsDelivered {
				status = deliveredStyle.Render("delivered")
			}
			who := o.UserName
			if who == "" {
				who = shortID(o.UserID)
			}
			row(i, fmt.Sprintf("%s  %s  %s  %s  %s",
				normalStyle.Render(shortID(o.ID)),
				dimStyle.Render(fmt.Sprintf("%-20s", truncStr(who, 20))),
				priceStyle.Render(fmt.Sprintf("%9s", money(o.TotalPrice))),
				status,
				metaStyle.Render(formatTime(o.CreatedAt))))
		}
		sb.WriteString("\n " + helpEntry("enter", "mark delivered") + "  " + helpEntry("c", "copy id"))
	case sectionUsers:
		if len(m.users) == 0 {
			return " " + dimStyle.Render("no users")
		}
		for i, u := range m.users {
			badge := "     "
			if u.IsAdmin {
				badge = adminBadgeStyle.Render("ADMIN")
			}
			row(i, fmt.Sprintf("%s  %s  %s",
				normalStyle.Render(fmt.Sprintf("%-24s", truncStr(u.Name, 24))),
				dimStyle.Render(fmt.Sprintf("%-30s", truncStr(u.Email, 30))),
				badge))
		}
		sb.WriteString("\n " + helpEntry("enter", "toggle admin") + "  " + helpEntry("x", "delete") + "  " + helpEntry("c", "copy id"))
	case sectionDeals:
		if len(m.deals) == 0 {
			return " " + dimStyle.Render("no deals — press n to create one")
		}
		now := time.Now()
		for i, d := range m.deals {
			state := metaStyle.Render("OVER")
			switch {
			case d.Active(now):
				state = dealStyle.Render("LIVE")
			case now.Before(d.StartsAt):
				state = pendingStyle.Render("SOON")
			}
			row(i, fmt.Sprintf("%s  %s  %s  %s",
				state,
				dealStyle.Render(fmt.Sprintf("-%d%%", d.Discount)),
				normalStyle.Render(fmt.Sprintf("%-40s", truncStr(d.Title, 40))),
				dimStyle.Render("ends "+d.EndsAt.Format("Jan 2"))))
		}
		sb.WriteString("\n " + helpEntry("n", "new deal") + "  " + helpEntry("x", "delete") + "  " + helpEntry("c", "copy id"))
	case sectionSlides:
		if len(m.slides) == 0 {
			return " " + dimStyle.Render("no slides")
		}
		for i, s := range m.slides {
			row(i, fmt.Sprintf("%s  %s  %s",
				metaStyle.Render(fmt.Sprintf("#%d", s.SortOrder)),
				normalStyle.Render(fmt.Sprintf("%-40s", truncStr(s.Title, 40))),
				dimStyle.Render(truncStr(s.Link, 30))))
		}
		sb.WriteString("\n " + helpEntry("x", "delete") + "  " + helpEntry("c", "copy id"))
	}
	return sb.String()
}

func (m adminModel) dealFormView() string {
	var sb strings.Builder
	sb.WriteString(" " + sectionHeaderStyle.Render("NEW DEAL") + "\n")
	for i, label := range dealFormLabels {
		prompt := "  "
		if m.dealField == i {
			prompt = inputPromptStyle.Render("> ")
		}
		cursor := ""
		if m.dealField == i {
			cursor = accentStyle.Render("█")
		}
		value := m.dealForm[i]
		shown := normalStyle.Render(value)
		if value == "" {
			shown = inputPlaceholderStyle.Render("(" + label + ")")
		}
		sb.WriteString("   " + prompt + dimStyle.Render(padLabel(label)) + shown + cursor + "\n")
	}
	if m.err != "" {
		sb.WriteString("   " + errStyle.Render(m.err) + "\n")
	}
	sb.WriteString("   " + helpEntry("enter", "create") + "  " + helpEntry("esc", "cancel") + "\n")
	return sb.String()
}
