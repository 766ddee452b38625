package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/auth"
	"github.com/ashwinpillay/voltcart/internal/route"
	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// newTestApp returns an App over a hydrated, signed-out session store backed
// by a temp dir. The client points at a dead address; tests never execute the
// returned commands that would hit it.
func newTestApp(t *testing.T) (App, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewStorage(t.TempDir()))
	store.Hydrate()
	c := client.New("http://127.0.0.1:1", "")
	a := New(c, store, route.RouteShop, false)
	a.width = 80
	a.height = 30
	return a, store
}

func signIn(t *testing.T, store *session.Store, admin bool) {
	t.Helper()
	if err := store.Set("tok-123", domain.User{ID: "u1", Name: "Priya", Email: "priya@example.com", IsAdmin: admin}); err != nil {
		t.Fatalf("set session: %v", err)
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestAppTabSwitchingPublicViews(t *testing.T) {
	tests := []struct {
		key      string
		wantView string
	}{
		{"1", route.RouteShop},
		{"2", route.RouteDeals},
		{"3", route.RouteNews},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a, _ := newTestApp(t)
			model, _ := a.Update(keyMsg(tc.key))
			got := model.(App)
			if got.view != tc.wantView {
				t.Errorf("after key %q: expected view=%s, got %s", tc.key, tc.wantView, got.view)
			}
		})
	}
}

func TestAppSignedOutCartRedirectsToLogin(t *testing.T) {
	a, _ := newTestApp(t)

	model, _ := a.Update(keyMsg("4"))
	got := model.(App)

	if got.view != route.RouteLogin {
		t.Fatalf("expected login view, got %s", got.view)
	}
	if got.pending == nil {
		t.Fatal("expected a recorded redirect, got nil")
	}
	if got.pending.From != route.RouteCart {
		t.Errorf("expected From=cart, got %s", got.pending.From)
	}
	if got.pending.Reason != route.ReasonUnauthenticated {
		t.Errorf("expected reason unauthenticated, got %s", got.pending.Reason)
	}
}

func TestAppSignedOutAdminGetsGenericLoginRedirect(t *testing.T) {
	a, _ := newTestApp(t)

	model, _ := a.Update(keyMsg("6"))
	got := model.(App)

	if got.view != route.RouteLogin {
		t.Fatalf("expected login view, got %s", got.view)
	}
	// Same redirect shape as any other protected view; nothing reveals that
	// the target was admin-only.
	if got.pending.Reason != route.ReasonUnauthenticated {
		t.Errorf("expected reason unauthenticated, got %s", got.pending.Reason)
	}
}

func TestAppNonAdminOnAdminViewLandsOnAccount(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, false)

	model, _ := a.Update(keyMsg("6"))
	got := model.(App)

	if got.view != route.RouteAccount {
		t.Fatalf("expected account landing, got %s", got.view)
	}
	if got.pending != nil {
		t.Error("forbidden redirect should not be parked for the login flow")
	}
}

func TestAppAdminReachesAdminView(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, true)

	model, _ := a.Update(keyMsg("6"))
	got := model.(App)

	if got.view != route.RouteAdmin {
		t.Fatalf("expected admin view, got %s", got.view)
	}
}

func TestAppProtectedNavigationWaitsForHydration(t *testing.T) {
	store := session.NewStore(session.NewStorage(t.TempDir()))
	c := client.New("http://127.0.0.1:1", "")
	a := New(c, store, route.RouteShop, false)

	a, _ = a.navigate(route.RouteCart)
	if a.view != route.RouteShop {
		t.Fatalf("expected view unchanged while loading, got %s", a.view)
	}
	if a.waiting != route.RouteCart {
		t.Fatalf("expected parked navigation to cart, got %q", a.waiting)
	}

	// Hydration finds nothing; the parked navigation resolves to a redirect.
	store.Hydrate()
	model, _ := a.Update(hydratedMsg{})
	got := model.(App)
	if got.view != route.RouteLogin {
		t.Errorf("expected login after hydration, got %s", got.view)
	}
}

func TestAppLoginReturnsToOriginalTarget(t *testing.T) {
	a, store := newTestApp(t)

	// Hit a protected view while signed out.
	model, _ := a.Update(keyMsg("4"))
	a = model.(App)
	if a.view != route.RouteLogin {
		t.Fatalf("expected login view, got %s", a.view)
	}

	// Sign-in succeeds out of band.
	signIn(t, store, false)
	model, _ = a.Update(loginDoneMsg{result: auth.Result{OK: true}})
	a = model.(App)

	if a.view != route.RouteCart {
		t.Errorf("expected return to cart after login, got %s", a.view)
	}
	if a.pending != nil {
		t.Error("expected pending redirect cleared after login")
	}
}

func TestAppLoginWithoutPendingLandsOnAccount(t *testing.T) {
	a, store := newTestApp(t)
	a, _ = a.navigate(route.RouteLogin)

	signIn(t, store, false)
	model, _ := a.Update(loginDoneMsg{result: auth.Result{OK: true}})
	got := model.(App)

	if got.view != route.RouteAccount {
		t.Errorf("expected account after login, got %s", got.view)
	}
}

func TestAppFailedLoginStaysOnLogin(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = a.navigate(route.RouteLogin)

	model, _ := a.Update(loginDoneMsg{result: auth.Result{
		Kind:    auth.FailureInvalidCredentials,
		Message: "Invalid email or password",
	}})
	got := model.(App)

	if got.view != route.RouteLogin {
		t.Errorf("expected to stay on login, got %s", got.view)
	}
	if got.login.errMsg != "Invalid email or password" {
		t.Errorf("expected server message shown verbatim, got %q", got.login.errMsg)
	}
}

func TestAppSignOutRegatesCurrentView(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, false)

	model, _ := a.Update(keyMsg("5"))
	a = model.(App)
	if a.view != route.RouteAccount {
		t.Fatalf("expected account view, got %s", a.view)
	}

	model, _ = a.Update(signOutMsg{})
	got := model.(App)
	if got.view != route.RouteLogin {
		t.Errorf("expected login after sign-out, got %s", got.view)
	}
	if store.IsAuthenticated() {
		t.Error("expected session cleared after sign-out")
	}
}

func TestAppSessionChangedRerunsGuard(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, true)

	model, _ := a.Update(keyMsg("6"))
	a = model.(App)
	if a.view != route.RouteAdmin {
		t.Fatalf("expected admin view, got %s", a.view)
	}

	// Session cleared from outside the update loop.
	store.Clear()
	model, _ = a.Update(SessionChangedMsg{})
	got := model.(App)
	if got.view != route.RouteLogin {
		t.Errorf("expected login after session change, got %s", got.view)
	}
}

func TestAppQuitOnQ(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppGlobalKeysDisabledWhileEditing(t *testing.T) {
	a, _ := newTestApp(t)
	a.view = route.RouteLogin
	if !a.isEditing() {
		t.Fatal("expected login view to own keystrokes")
	}

	model, cmd := a.Update(keyMsg("q"))
	got := model.(App)
	if cmd != nil {
		t.Error("expected 'q' to be typed into the form, not quit")
	}
	if got.view != route.RouteLogin {
		t.Errorf("expected to stay on login, got %s", got.view)
	}
}

func TestAppHelpToggle(t *testing.T) {
	a, _ := newTestApp(t)

	model, _ := a.Update(keyMsg("h"))
	a = model.(App)
	if !a.showHelp {
		t.Fatal("expected help shown after 'h'")
	}
	if !strings.Contains(a.View(), "voltcart login") {
		t.Error("expected command reference in help view")
	}

	model, _ = a.Update(keyMsg("esc"))
	a = model.(App)
	if a.showHelp {
		t.Error("expected help hidden after esc")
	}
}

func TestAppViewFitsHeight(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, true)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	a = model.(App)

	out := a.View()
	lines := strings.Count(out, "\n") + 1
	if lines > 20 {
		t.Errorf("expected at most 20 lines, got %d", lines)
	}
}

func TestAppTabBarHidesAdminForCustomers(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, false)
	if strings.Contains(a.tabBar(), "admin") {
		t.Error("expected no admin tab for a non-admin session")
	}

	store.Clear()
	signIn(t, store, true)
	if !strings.Contains(a.tabBar(), "admin") {
		t.Error("expected admin tab for an admin session")
	}
}
