package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

type newsLoadedMsg struct {
	blogs  []domain.Blog
	events []domain.Event
	err    error
}

type blogBodyMsg struct {
	blog *domain.Blog
	err  error
}

// newsModel is the public content view: blog posts and upcoming events.
type newsModel struct {
	client  *client.Client
	blogs   []domain.Blog
	events  []domain.Event
	cursor  int
	loading bool
	err     string

	reading  bool
	readPost *domain.Blog

	width  int
	height int
}

func newNewsModel(c *client.Client) newsModel {
	return newsModel{client: c, loading: true}
}

func (m newsModel) Init() tea.Cmd {
	return m.load()
}

func (m newsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		blogs, err := c.ListBlogs(context.Background())
		if err != nil {
			return newsLoadedMsg{err: err}
		}
		events, err := c.ListEvents(context.Background())
		if err != nil {
			return newsLoadedMsg{err: err}
		}
		return newsLoadedMsg{blogs: blogs, events: events}
	}
}

func (m newsModel) Update(msg tea.Msg) (newsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case newsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.blogs = msg.blogs
			m.events = msg.events
			m.err = ""
			if m.cursor >= len(m.blogs) {
				m.cursor = 0
			}
		}
		return m, nil

	case blogBodyMsg:
		if msg.err == nil && m.reading {
			m.readPost = msg.blog
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

func (m newsModel) updateKeys(msg tea.KeyMsg) (newsModel, tea.Cmd) {
	if m.reading {
		if msg.String() == "esc" {
			m.reading = false
			m.readPost = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.blogs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.blogs) {
			id := m.blogs[m.cursor].ID
			m.reading = true
			m.readPost = nil
			c := m.client
			return m, func() tea.Msg {
				blog, err := c.GetBlog(context.Background(), id)
				return blogBodyMsg{blog: blog, err: err}
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m newsModel) View() string {
	if m.loading && len(m.blogs) == 0 && len(m.events) == 0 {
		return " " + dimStyle.Render("loading news...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}

	if m.reading {
		return m.readingView()
	}

	var sb strings.Builder

	sb.WriteString(" " + sectionHeaderStyle.Render("FROM THE BLOG") + "\n")
	if len(m.blogs) == 0 {
		sb.WriteString("   " + dimStyle.Render("no posts yet") + "\n")
	}
	for i, b := range m.blogs {
		cursor := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		sb.WriteString(fmt.Sprintf(" %s%s %s\n", cursor,
			titleStyle.Render(truncStr(b.Title, 56)),
			metaStyle.Render("· "+b.Author+" · "+formatTime(b.CreatedAt))))
		if b.Excerpt != "" && i == m.cursor {
			sb.WriteString("     " + dimStyle.Render(truncStr(b.Excerpt, 76)) + "\n")
		}
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("UPCOMING EVENTS") + "\n")
	if len(m.events) == 0 {
		sb.WriteString("   " + dimStyle.Render("nothing scheduled"))
	}
	for _, e := range m.events {
		sb.WriteString(fmt.Sprintf("   %s  %s %s\n",
			accentStyle.Render(e.StartsAt.Format("Jan 2")),
			normalStyle.Render(truncStr(e.Title, 52)),
			dimStyle.Render("@ "+e.Location)))
	}
	return sb.String()
}

func (m newsModel) readingView() string {
	if m.readPost == nil {
		return " " + dimStyle.Render("loading post...")
	}
	b := m.readPost
	var sb strings.Builder
	sb.WriteString(" " + selectedStyle.Render(b.Title) + "\n")
	sb.WriteString(" " + metaStyle.Render(b.Author+" · "+formatTime(b.CreatedAt)) + "\n\n")

	bodyWidth := m.width - 4
	if bodyWidth < 20 {
		bodyWidth = 60
	}
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(normalStyle.Render(b.Body))
	for _, line := range strings.Split(wrapped, "\n") {
		sb.WriteString(" " + line + "\n")
	}
	return sb.String()
}
