package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

type dealsLoadedMsg struct {
	deals  []domain.Deal
	slides []domain.Slide
	err    error
}

// dealsModel is the public deals view: running and scheduled discounts plus
// the storefront carousel headlines.
type dealsModel struct {
	client  *client.Client
	deals   []domain.Deal
	slides  []domain.Slide
	loading bool
	err     string
	width   int
	height  int
}

func newDealsModel(c *client.Client) dealsModel {
	return dealsModel{client: c, loading: true}
}

func (m dealsModel) Init() tea.Cmd {
	return m.load()
}

func (m dealsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		deals, err := c.ListDeals(context.Background())
		if err != nil {
			return dealsLoadedMsg{err: err}
		}
		// Slides are decoration; a failure here only hides the headlines.
		slides, err := c.ListSlides(context.Background())
		if err != nil {
			slides = nil
		}
		return dealsLoadedMsg{deals: deals, slides: slides}
	}
}

func (m dealsModel) Update(msg tea.Msg) (dealsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dealsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.deals = msg.deals
			m.slides = msg.slides
			m.err = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m dealsModel) View() string {
	if m.loading && len(m.deals) == 0 {
		return " " + dimStyle.Render("loading deals...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}

	var sb strings.Builder
	now := time.Now()

	if len(m.slides) > 0 {
		sb.WriteString(" " + sectionHeaderStyle.Render("FEATURED") + "\n")
		for _, s := range m.slides {
			sb.WriteString("   " + accentStyle.Render("▸ ") + normalStyle.Render(truncStr(s.Title, 70)) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(" " + sectionHeaderStyle.Render("DEALS") + "\n")
	if len(m.deals) == 0 {
		sb.WriteString("   " + dimStyle.Render("no deals right now — check back soon"))
		return sb.String()
	}

	for _, d := range m.deals {
		var state string
		switch {
		case d.Active(now):
			state = dealStyle.Render("LIVE")
		case now.Before(d.StartsAt):
			state = pendingStyle.Render("SOON")
		default:
			state = metaStyle.Render("OVER")
		}

		scope := d.Category
		if scope == "" {
			scope = "one product"
		}
		sb.WriteString(fmt.Sprintf("   %s  %s  %s %s\n",
			state,
			dealStyle.Render(fmt.Sprintf("-%d%%", d.Discount)),
			normalStyle.Render(truncStr(d.Title, 48)),
			dimStyle.Render("("+scope+", ends "+d.EndsAt.Format("Jan 2")+")")))
	}
	return sb.String()
}
