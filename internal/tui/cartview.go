package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/cart"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

type orderPlacedMsg struct {
	order *domain.Order
	err   error
}

// cartModel is the authenticated cart and checkout view.
type cartModel struct {
	client *client.Client
	cart   *cart.Cart

	cursor      int
	placing     bool
	lastOrderID string
	statusMsg   string
	errMsg      string

	width  int
	height int
}

func newCartModel(c *client.Client, crt *cart.Cart) cartModel {
	return cartModel{client: c, cart: crt}
}

func (m cartModel) Init() tea.Cmd {
	return nil
}

func (m cartModel) Update(msg tea.Msg) (cartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case orderPlacedMsg:
		m.placing = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.cart.Clear()
			m.cursor = 0
			m.lastOrderID = msg.order.ID
			m.errMsg = ""
			m.statusMsg = fmt.Sprintf("order %s placed — %s", shortID(msg.order.ID), money(msg.order.TotalPrice))
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

func (m cartModel) updateKeys(msg tea.KeyMsg) (cartModel, tea.Cmd) {
	if m.placing {
		return m, nil // ignore keys while the order is in flight
	}
	m.statusMsg = ""
	m.errMsg = ""

	lines := m.cart.Lines()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(lines)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "+", "=":
		if m.cursor < len(lines) {
			l := lines[m.cursor]
			m.cart.SetQty(l.ID, l.Qty+1)
		}
	case "-":
		if m.cursor < len(lines) {
			l := lines[m.cursor]
			m.cart.SetQty(l.ID, l.Qty-1)
			if m.cursor >= len(m.cart.Lines()) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "x", "backspace":
		if m.cursor < len(lines) {
			m.cart.Remove(lines[m.cursor].ID)
			if m.cursor >= len(m.cart.Lines()) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "enter":
		return m.checkout()
	}
	return m, nil
}

func (m cartModel) checkout() (cartModel, tea.Cmd) {
	if m.cart.Empty() {
		m.statusMsg = "cart is empty — add something from the shop"
		return m, nil
	}
	m.placing = true
	req := m.cart.OrderRequest()
	c := m.client
	return m, func() tea.Msg {
		order, err := c.CreateOrder(context.Background(), req)
		return orderPlacedMsg{order: order, err: err}
	}
}

func (m cartModel) View() string {
	var sb strings.Builder

	lines := m.cart.Lines()
	if len(lines) == 0 {
		sb.WriteString(" " + dimStyle.Render("your cart is empty") + "\n")
		if m.statusMsg != "" {
			sb.WriteString("\n " + okStyle.Render(m.statusMsg))
		}
		return sb.String()
	}

	for i, l := range lines {
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		sb.WriteString(fmt.Sprintf(" %s%s  %s  %s\n",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-44s", truncStr(l.Name, 44))),
			dimStyle.Render(fmt.Sprintf("x%-3d", l.Qty)),
			priceStyle.Render(fmt.Sprintf("%10s", money(l.Price*float64(l.Qty))))))
	}

	sb.WriteString("\n")
	sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("%-52s", "subtotal")) +
		normalStyle.Render(fmt.Sprintf("%10s", money(m.cart.Subtotal()))) + "\n")
	shippingLabel := money(m.cart.Shipping())
	if m.cart.Shipping() == 0 {
		shippingLabel = "free"
	}
	sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("%-52s", "shipping")) +
		normalStyle.Render(fmt.Sprintf("%10s", shippingLabel)) + "\n")
	sb.WriteString(" " + selectedStyle.Render(fmt.Sprintf("%-52s", "total")) +
		priceStyle.Render(fmt.Sprintf("%10s", money(m.cart.Total()))) + "\n")

	if m.placing {
		sb.WriteString("\n " + dimStyle.Render("placing order..."))
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg))
	}
	return sb.String()
}
