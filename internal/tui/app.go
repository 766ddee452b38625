// Package tui is the terminal storefront. A root App model owns the shared
// session, cart and API client, and composes one sub-model per view. Every
// view switch runs through the route guard, so a stale session can never
// leave a protected view on screen.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/auth"
	"github.com/ashwinpillay/voltcart/internal/cart"
	"github.com/ashwinpillay/voltcart/internal/route"
	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
)

// SessionChangedMsg tells the App the session store changed outside its own
// update loop (another goroutine, another command). The guard re-runs for the
// current view.
type SessionChangedMsg struct{}

type hydratedMsg struct{}

// sweepFrames is how many animation frames the route-change sweep runs.
const sweepFrames = 12

// chromeLines is the fixed vertical budget: logo, blank, tab bar, sweep rule,
// blank, and the help bar.
const chromeLines = 6

// App is the root model.
type App struct {
	client *client.Client
	store  *session.Store
	auth   *auth.Service
	cart   *cart.Cart

	view    string
	waiting string          // navigation parked until hydration finishes
	pending *route.Redirect // recorded so login can return the user

	shop     shopModel
	deals    dealsModel
	news     newsModel
	cartView cartModel
	account  accountModel
	admin    adminModel
	login    loginModel

	// envToken means the bearer token came from the environment and the
	// hydrated session must not override it on the client.
	envToken bool

	showHelp bool
	frame    int
	sweep    int
	width    int
	height   int
}

// New assembles the App. startView is the first navigation target; pass
// route.RouteShop for the default storefront entry.
func New(c *client.Client, store *session.Store, startView string, envToken bool) App {
	crt := cart.New()
	svc := auth.NewService(c, store)
	// Public views render immediately; anything gated waits for hydration.
	waiting := startView
	if route.Table[startView] == route.AccessPublic {
		waiting = ""
	}
	return App{
		client:   c,
		store:    store,
		auth:     svc,
		cart:     crt,
		waiting:  waiting,
		view:     startView,
		envToken: envToken,
		shop:     newShopModel(c, crt),
		deals:    newDealsModel(c),
		news:     newNewsModel(c),
		cartView: newCartModel(c, crt),
		account:  newAccountModel(c, svc, store),
		admin:    newAdminModel(c, store),
		login:    newLoginModel(svc),
	}
}

func (m App) Init() tea.Cmd {
	store := m.store
	hydrate := func() tea.Msg {
		store.Hydrate()
		return hydratedMsg{}
	}
	cmds := []tea.Cmd{shimmerTickCmd(), hydrate}
	if m.waiting == "" {
		cmds = append(cmds, m.viewInit(m.view))
	}
	return tea.Batch(cmds...)
}

// navigate runs the guard for name and applies the decision.
func (m App) navigate(name string) (App, tea.Cmd) {
	d := route.Check(name, m.store)
	switch {
	case d.Wait:
		m.waiting = name
		return m, nil

	case d.Allow:
		m.waiting = ""
		if m.view != name {
			m.sweep = sweepFrames
		}
		m.view = name
		return m, m.viewInit(name)

	default:
		m.waiting = ""
		r := d.Redirect
		m.sweep = sweepFrames
		if r.Reason == route.ReasonUnauthenticated {
			// Park the original target so a successful sign-in returns there.
			m.pending = r
			m.view = r.Target
			m.login = m.login.setNotice("sign in to continue to " + r.From)
			return m, nil
		}
		// Signed in but not allowed: land on the account view, never login.
		m.view = r.Target
		return m, m.viewInit(r.Target)
	}
}

// viewInit kicks off the freshly shown view's data load.
func (m App) viewInit(name string) tea.Cmd {
	switch name {
	case route.RouteShop:
		return m.shop.Init()
	case route.RouteDeals:
		return m.deals.Init()
	case route.RouteNews:
		return m.news.Init()
	case route.RouteCart:
		return m.cartView.Init()
	case route.RouteAccount:
		return m.account.Init()
	case route.RouteAdmin:
		return m.admin.Init()
	case route.RouteLogin:
		return m.login.Init()
	}
	return nil
}

// isEditing reports whether the active view owns raw keystrokes, which
// disables the global key bindings.
func (m App) isEditing() bool {
	switch m.view {
	case route.RouteShop:
		return m.shop.searching
	case route.RouteLogin:
		return m.login.isEditing()
	case route.RouteAccount:
		return m.account.isEditing()
	case route.RouteAdmin:
		return m.admin.isEditing()
	}
	return false
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hydratedMsg:
		if !m.envToken {
			m.client.SetToken(m.store.Token())
		}
		if m.waiting != "" {
			next, cmd := m.navigate(m.waiting)
			return next, cmd
		}
		return m, nil

	case SessionChangedMsg:
		next, cmd := m.navigate(m.view)
		return next, cmd

	case signOutMsg:
		m.auth.Logout()
		// Re-running the guard for the current view pushes the user off any
		// protected view immediately.
		next, cmd := m.navigate(m.view)
		return next, cmd

	case loginDoneMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if msg.result.OK {
			target := route.RouteAccount
			if m.pending != nil {
				target = m.pending.From
			}
			m.pending = nil
			next, navCmd := m.navigate(target)
			return next, tea.Batch(cmd, navCmd)
		}
		return m, cmd

	case shimmerTickMsg:
		m.frame++
		if m.sweep > 0 {
			m.sweep--
		}
		return m, shimmerTickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.routeMsg(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.routeMsg(msg)
}

func (m App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		if key == "h" || key == "esc" || key == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	if !m.isEditing() {
		switch key {
		case "q":
			return m, tea.Quit
		case "h":
			m.showHelp = true
			return m, nil
		case "1", "2", "3", "4", "5", "6":
			targets := map[string]string{
				"1": route.RouteShop,
				"2": route.RouteDeals,
				"3": route.RouteNews,
				"4": route.RouteCart,
				"5": route.RouteAccount,
				"6": route.RouteAdmin,
			}
			next, cmd := m.navigate(targets[key])
			return next, cmd
		}
	}

	return m.routeMsg(msg)
}

// routeMsg delivers msg to the sub-model behind the active view. Load
// completions are also delivered off-view so a slow response is not lost to a
// quick tab switch.
func (m App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch m.view {
		case route.RouteShop:
			m.shop, cmd = m.shop.Update(msg)
		case route.RouteDeals:
			m.deals, cmd = m.deals.Update(msg)
		case route.RouteNews:
			m.news, cmd = m.news.Update(msg)
		case route.RouteCart:
			m.cartView, cmd = m.cartView.Update(msg)
		case route.RouteAccount:
			m.account, cmd = m.account.Update(msg)
		case route.RouteAdmin:
			m.admin, cmd = m.admin.Update(msg)
		case route.RouteLogin:
			m.login, cmd = m.login.Update(msg)
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	m.shop, cmd = m.shop.Update(msg)
	cmds = append(cmds, cmd)
	m.deals, cmd = m.deals.Update(msg)
	cmds = append(cmds, cmd)
	m.news, cmd = m.news.Update(msg)
	cmds = append(cmds, cmd)
	m.cartView, cmd = m.cartView.Update(msg)
	cmds = append(cmds, cmd)
	m.account, cmd = m.account.Update(msg)
	cmds = append(cmds, cmd)
	m.admin, cmd = m.admin.Update(msg)
	cmds = append(cmds, cmd)
	m.login, cmd = m.login.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m App) View() string {
	if m.showHelp {
		return helpView()
	}

	var sb strings.Builder
	sb.WriteString(" " + renderShimmerLogo(m.frame) + m.sessionBadge() + "\n\n")
	sb.WriteString(m.tabBar() + "\n")
	sb.WriteString(renderTransitionSweep(m.width, m.sweep, m.frame) + "\n\n")

	body := m.bodyView()
	if m.height > 0 {
		body = truncateToHeight(body, m.height-chromeLines)
	}
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(m.helpBar())
	return sb.String()
}

func (m App) bodyView() string {
	if m.waiting != "" && m.store.Loading() {
		return " " + dimStyle.Render("restoring session...")
	}
	switch m.view {
	case route.RouteShop:
		return m.shop.View()
	case route.RouteDeals:
		return m.deals.View()
	case route.RouteNews:
		return m.news.View()
	case route.RouteCart:
		return m.cartView.View()
	case route.RouteAccount:
		return m.account.View()
	case route.RouteAdmin:
		return m.admin.View()
	case route.RouteLogin:
		return m.login.View()
	}
	return ""
}

// sessionBadge renders the signed-in user (or nothing) after the logo.
func (m App) sessionBadge() string {
	u, ok := m.store.User()
	if !ok {
		return ""
	}
	badge := "   " + metaStyle.Render("· ") + dimStyle.Render(u.Name)
	if u.IsAdmin {
		badge += " " + adminBadgeStyle.Render("ADMIN")
	}
	return badge
}

func (m App) tabBar() string {
	type tab struct {
		key, name string
	}
	tabs := []tab{
		{"1", route.RouteShop},
		{"2", route.RouteDeals},
		{"3", route.RouteNews},
		{"4", route.RouteCart},
		{"5", route.RouteAccount},
	}
	if m.store.IsAdmin() {
		tabs = append(tabs, tab{"6", route.RouteAdmin})
	}

	var parts []string
	for _, t := range tabs {
		label := t.name
		if t.name == route.RouteCart && m.cart.ItemCount() > 0 {
			label = fmt.Sprintf("%s(%d)", t.name, m.cart.ItemCount())
		}
		if t.name == m.view {
			parts = append(parts, accentStyle.Render(t.key+" "+label))
		} else {
			parts = append(parts, helpKeyStyle.Render(t.key)+" "+helpLabelStyle.Render(label))
		}
	}
	if m.view == route.RouteLogin {
		parts = append(parts, accentStyle.Render("sign in"))
	}
	return " " + strings.Join(parts, dimStyle.Render("  │  "))
}

func (m App) helpBar() string {
	entries := []string{helpEntry("1-6", "views")}
	switch m.view {
	case route.RouteShop:
		entries = append(entries, helpEntry("/", "search"), helpEntry("a", "add to cart"), helpEntry("enter", "detail"))
	case route.RouteCart:
		entries = append(entries, helpEntry("+/-", "qty"), helpEntry("x", "remove"), helpEntry("enter", "checkout"))
	case route.RouteAccount:
		entries = append(entries, helpEntry("e", "edit profile"), helpEntry("c", "copy order id"), helpEntry("s", "sign out"))
	case route.RouteAdmin:
		entries = append(entries, helpEntry("tab", "section"), helpEntry("enter", "action"), helpEntry("x", "delete"))
	case route.RouteNews:
		entries = append(entries, helpEntry("enter", "read"))
	}
	entries = append(entries, helpEntry("h", "help"), helpEntry("q", "quit"))
	return " " + strings.Join(entries, "  ")
}
