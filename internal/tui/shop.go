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

type productsLoadedMsg struct {
	page *domain.ProductPage
	err  error
}

type productRefreshedMsg struct {
	product *domain.Product
	err     error
}

// shopModel is the public catalog view: paginated product list with keyword
// search and a detail pane.
type shopModel struct {
	client *client.Client
	cart   *cart.Cart

	products []domain.Product
	page     int
	pages    int
	cursor   int
	loading  bool
	err      string

	search    string
	searching bool

	detail        bool
	detailProduct *domain.Product

	statusMsg string
	width     int
	height    int
}

func newShopModel(c *client.Client, crt *cart.Cart) shopModel {
	return shopModel{client: c, cart: crt, page: 1, loading: true}
}

func (m shopModel) Init() tea.Cmd {
	return m.load()
}

func (m shopModel) load() tea.Cmd {
	c := m.client
	keyword, page := m.search, m.page
	return func() tea.Msg {
		pp, err := c.ListProducts(context.Background(), keyword, page)
		return productsLoadedMsg{page: pp, err: err}
	}
}

func (m shopModel) openDetail() (shopModel, tea.Cmd) {
	if m.cursor >= len(m.products) {
		return m, nil
	}
	p := m.products[m.cursor]
	m.detail = true
	m.detailProduct = &p
	// Refresh so the stock count is current, not the page snapshot.
	c := m.client
	return m, func() tea.Msg {
		fresh, err := c.GetProduct(context.Background(), p.ID)
		return productRefreshedMsg{product: fresh, err: err}
	}
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.products = msg.page.Products
			m.page = msg.page.Page
			m.pages = msg.page.Pages
			m.err = ""
			if m.cursor >= len(m.products) {
				m.cursor = 0
			}
		}
		return m, nil

	case productRefreshedMsg:
		// Stale refreshes are fine to drop; the snapshot stays on screen.
		if msg.err == nil && m.detail && m.detailProduct != nil && msg.product.ID == m.detailProduct.ID {
			m.detailProduct = msg.product
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

func (m shopModel) updateKeys(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	key := msg.String()
	m.statusMsg = ""

	if m.searching {
		switch key {
		case "enter":
			m.searching = false
			m.page = 1
			m.loading = true
			return m, m.load()
		case "esc":
			m.searching = false
			m.search = ""
			m.page = 1
			m.loading = true
			return m, m.load()
		default:
			m.search = editRune(m.search, key)
		}
		return m, nil
	}

	if m.detail {
		switch key {
		case "esc":
			m.detail = false
			m.detailProduct = nil
		case "a":
			return m.addToCart(*m.detailProduct)
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n", "right":
		if m.page < m.pages {
			m.page++
			m.loading = true
			return m, m.load()
		}
	case "p", "left":
		if m.page > 1 {
			m.page--
			m.loading = true
			return m, m.load()
		}
	case "/":
		m.searching = true
		m.search = ""
	case "enter":
		return m.openDetail()
	case "a":
		if m.cursor < len(m.products) {
			return m.addToCart(m.products[m.cursor])
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m shopModel) addToCart(p domain.Product) (shopModel, tea.Cmd) {
	if !p.InStock() {
		m.statusMsg = p.Name + " is out of stock"
		return m, nil
	}
	m.cart.Add(p, 1)
	m.statusMsg = fmt.Sprintf("added %s — cart has %d item(s)", truncStr(p.Name, 40), m.cart.ItemCount())
	return m, nil
}

func (m shopModel) View() string {
	if m.loading && len(m.products) == 0 {
		return " " + dimStyle.Render("loading catalog...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}

	if m.detail && m.detailProduct != nil {
		return m.detailView()
	}

	var sb strings.Builder

	// Search / pagination header
	if m.searching {
		sb.WriteString(" " + searchStyle.Render("/"+m.search) + accentStyle.Render("█") + "\n")
	} else if m.search != "" {
		sb.WriteString(" " + dimStyle.Render("search: ") + searchStyle.Render(m.search) +
			dimStyle.Render(fmt.Sprintf("  page %d/%d", m.page, m.pages)) + "\n")
	} else {
		sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("catalog — page %d/%d", m.page, max(m.pages, 1))) + "\n")
	}
	sb.WriteString("\n")

	if len(m.products) == 0 {
		sb.WriteString(" " + dimStyle.Render("no products found"))
		return sb.String()
	}

	for i, p := range m.products {
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}

		stock := stockStyle.Render(fmt.Sprintf("%d in stock", p.CountInStock))
		if !p.InStock() {
			stock = outOfStockStyle.Render("out of stock")
		}

		line := fmt.Sprintf(" %s%s  %s  %s  %s",
			cursor,
			CategoryStyle(p.Category).Render(fmt.Sprintf("%-12s", p.Category)),
			nameStyle.Render(fmt.Sprintf("%-42s", truncStr(p.Name, 42))),
			priceStyle.Render(fmt.Sprintf("%10s", money(p.Price))),
			stock)
		sb.WriteString(line + "\n")
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg))
	}
	return sb.String()
}

func (m shopModel) detailView() string {
	p := m.detailProduct
	var sb strings.Builder

	sb.WriteString(" " + selectedStyle.Render(p.Name) + "\n")
	sb.WriteString(" " + CategoryStyle(p.Category).Render(p.Category) +
		dimStyle.Render("  ·  ") + dimStyle.Render(p.Brand) + "\n\n")
	sb.WriteString(" " + priceStyle.Render(money(p.Price)) + "\n")

	if p.InStock() {
		sb.WriteString(" " + stockStyle.Render(fmt.Sprintf("%d in stock", p.CountInStock)) + "\n")
	} else {
		sb.WriteString(" " + outOfStockStyle.Render("out of stock") + "\n")
	}
	if p.NumReviews > 0 {
		sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("%.1f ★ (%d reviews)", p.Rating, p.NumReviews)) + "\n")
	}
	if p.Description != "" {
		sb.WriteString("\n " + normalStyle.Render(truncStr(p.Description, 400)) + "\n")
	}
	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg))
	}
	return sb.String()
}
