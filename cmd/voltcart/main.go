package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/route"
	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/internal/tui"
	"github.com/ashwinpillay/voltcart/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const defaultAPIURL = "https://api.voltcart.dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	apiURL := os.Getenv("VOLTCART_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("voltcart " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			// Credentials are typed into the TUI form, never echoed to a shell.
			return launch(apiURL, route.RouteLogin)
		case "logout":
			return runLogout()
		case "whoami":
			return runWhoami()
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
	}

	return launch(apiURL, route.RouteShop)
}

func launch(apiURL, startView string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	// An env token wins over the saved session for API calls this run.
	envToken := os.Getenv("VOLTCART_TOKEN")
	c := client.New(apiURL, envToken)

	app := tui.New(c, store, startView, envToken != "")
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Session changes made off the update loop re-run the route guard.
	unsubscribe := store.Subscribe(func() {
		p.Send(tui.SessionChangedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	store.Hydrate()
	if !store.IsAuthenticated() {
		fmt.Println("Already logged out.")
		return nil
	}
	store.Clear()
	fmt.Println("Logged out.")
	return nil
}

func runWhoami() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	store.Hydrate()
	u, ok := store.User()
	if !ok {
		fmt.Println("Not signed in. Run `voltcart login`.")
		return nil
	}
	role := "customer"
	if u.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, role)
	return nil
}

func openStore() (*session.Store, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("locate session dir: %w", err)
	}
	return session.NewStore(session.NewStorage(dir)), nil
}

func printHelp() {
	fmt.Print(`voltcart — PC parts and builds, from your terminal

Usage:
  voltcart            Browse the store (interactive TUI)
  voltcart login      Open the store on the sign-in view
  voltcart logout     Clear the saved session
  voltcart whoami     Show the signed-in account
  voltcart version    Show version

Environment:
  VOLTCART_API_URL    Backend base URL (default ` + defaultAPIURL + `)
  VOLTCART_TOKEN      Bearer token override; skips the saved session
`)
}
