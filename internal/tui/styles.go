package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the VOLTCART wordmark and route transitions.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// amberAt maps a 0..1 brightness onto the copper-to-amber ramp shared by the
// wordmark and the transition sweep: #3a2410 at 0, #fbbf24 at 1.
func amberAt(b float64) lipgloss.Color {
	if b < 0 {
		b = 0
	} else if b > 1 {
		b = 1
	}
	r := int(58 + b*(251-58))
	g := int(36 + b*(191-36))
	bl := int(16 + b*(36-16))
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl))
}

// renderShimmerLogo renders the VOLTCART wordmark with a band of light
// drifting left to right across the letters.
func renderShimmerLogo(frame int) string {
	const text = "VOLTCART"
	t := float64(frame)

	// The band cycles past both ends so it visibly enters and leaves.
	center := math.Mod(t*0.12, float64(len(text))+4) - 2

	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		dist := float64(i) - center
		b := 0.22 + 0.78*math.Exp(-dist*dist/3.5)
		// Slow breathing keeps the word from ever sitting static.
		b *= 0.85 + 0.15*math.Cos(t*0.04)

		st := lipgloss.NewStyle().Bold(true).Foreground(amberAt(b))
		sb.WriteString(st.Render(string(text[i])))
		if i < len(text)-1 {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}

// renderTransitionSweep draws the separator under the tab bar. For the few
// frames after a route change the amber band rushes across it, then it
// settles to the plain dim rule. Purely cosmetic.
func renderTransitionSweep(width, framesLeft, frame int) string {
	w := width - 2
	if w < 4 {
		w = 4
	}
	if framesLeft <= 0 {
		return " " + metaStyle.Render(strings.Repeat("─", w))
	}

	center := float64(w) * (1 - float64(framesLeft)/float64(sweepFrames))
	var sb strings.Builder
	for i := 0; i < w; i++ {
		dist := float64(i) - center
		b := math.Exp(-dist * dist / 18)
		sb.WriteString(lipgloss.NewStyle().Foreground(amberAt(b)).Render("─"))
	}
	return " " + sb.String()
}

var (
	// Base styles — voltcart neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Commerce styles
	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	dealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)

	stockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	outOfStockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	adminBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c084e0")).
			Bold(true)

	deliveredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0944a"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Category colors
	categoryColors = map[string]lipgloss.Color{
		"cpu":         lipgloss.Color("#e06060"),
		"gpu":         lipgloss.Color("#b080d0"),
		"motherboard": lipgloss.Color("#f0944a"),
		"memory":      lipgloss.Color("#d4a844"),
		"storage":     lipgloss.Color("#60a0e0"),
		"psu":         lipgloss.Color("#d05050"),
		"case":        lipgloss.Color("#3ecce4"),
		"cooling":     lipgloss.Color("#34d474"),
		"peripherals": lipgloss.Color("#c084e0"),
		"prebuilt":    lipgloss.Color("#fbbf24"),
	}

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)
)

// CategoryStyle returns a bold style colored for the given product category.
func CategoryStyle(category string) lipgloss.Style {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpView renders the help overlay: commands, then key reference.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("V O L T C A R T")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("PC parts and builds, from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"voltcart", "Browse the store (interactive TUI)"},
		{"voltcart login", "Open the store on the sign-in view"},
		{"voltcart logout", "Clear your saved session"},
		{"voltcart whoami", "Show the signed-in account"},
		{"voltcart --version", "Show version"},
	}

	keys := []struct{ key, desc string }{
		{"1-6", "switch views"},
		{"j/k", "move cursor"},
		{"/", "search the catalog"},
		{"enter", "open / confirm"},
		{"esc", "back / cancel"},
		{"h", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
