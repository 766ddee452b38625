package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

func newTestAdminModel(t *testing.T, c *client.Client) adminModel {
	t.Helper()
	store := session.NewStore(session.NewStorage(t.TempDir()))
	store.Hydrate()
	if err := store.Set("tok", domain.User{ID: "admin1", Name: "Root", Email: "root@x.com", IsAdmin: true}); err != nil {
		t.Fatalf("set session: %v", err)
	}
	m := newAdminModel(c, store)
	m.width = 80
	m.height = 30
	m.loading = false
	return m
}

func TestAdminSectionCycling(t *testing.T) {
	m := newTestAdminModel(t, nil)
	if m.section != sectionOrders {
		t.Fatalf("expected orders first, got %v", m.section)
	}
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	if m.section != sectionUsers {
		t.Fatalf("expected users after tab, got %v", m.section)
	}
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.section != sectionOrders {
		t.Errorf("expected orders after shift+tab, got %v", m.section)
	}
}

func TestAdminDeliverOrder(t *testing.T) {
	var delivered string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/deliver") {
			delivered = r.URL.Path
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	m := newTestAdminModel(t, client.New(srv.URL, "tok"))
	m.orders = []domain.Order{{ID: "order-77", TotalPrice: 99, CreatedAt: time.Now()}}

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a deliver command")
	}
	msg := cmd().(adminActionMsg)
	if msg.err != nil {
		t.Fatalf("deliver failed: %v", msg.err)
	}
	if !strings.Contains(delivered, "order-77") {
		t.Errorf("expected deliver call for order-77, got %q", delivered)
	}
}

func TestAdminDeliverAlreadyDeliveredIsLocal(t *testing.T) {
	m := newTestAdminModel(t, nil)
	m.orders = []domain.Order{{ID: "order-1", IsDelivered: true, CreatedAt: time.Now()}}

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command for an already delivered order")
	}
	if !strings.Contains(m.statusMsg, "already delivered") {
		t.Errorf("expected status message, got %q", m.statusMsg)
	}
}

func TestAdminRefusesSelfMutation(t *testing.T) {
	m := newTestAdminModel(t, nil)
	m.section = sectionUsers
	m.users = []domain.User{{ID: "admin1", Name: "Root", Email: "root@x.com", IsAdmin: true}}

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command toggling own admin flag")
	}
	if !strings.Contains(m.statusMsg, "own admin flag") {
		t.Errorf("expected refusal message, got %q", m.statusMsg)
	}

	m, cmd = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Fatal("expected no command deleting own account")
	}
	if !strings.Contains(m.statusMsg, "own account") {
		t.Errorf("expected refusal message, got %q", m.statusMsg)
	}
}

func TestAdminToggleUserAdmin(t *testing.T) {
	var gotBody map[string]bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	m := newTestAdminModel(t, client.New(srv.URL, "tok"))
	m.section = sectionUsers
	m.users = []domain.User{{ID: "u2", Name: "Dev", Email: "dev@x.com"}}

	_, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a toggle command")
	}
	msg := cmd().(adminActionMsg)
	if msg.err != nil {
		t.Fatalf("toggle failed: %v", msg.err)
	}
	if !gotBody["isAdmin"] {
		t.Error("expected isAdmin=true granted to a non-admin user")
	}
}

func TestAdminNewDealFormValidation(t *testing.T) {
	m := newTestAdminModel(t, nil)
	m.section = sectionDeals
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if !m.creating {
		t.Fatal("expected deal form open after 'n'")
	}
	if !m.isEditing() {
		t.Fatal("expected form to own keystrokes")
	}

	// Submit with no title.
	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command without a title")
	}
	if !strings.Contains(m.err, "title") {
		t.Errorf("expected title validation, got %q", m.err)
	}

	// Fill a title, break the category.
	for _, r := range "Summer GPU sale" {
		m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "gpus" {
		m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd = m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command with an unknown category")
	}
	if !strings.Contains(m.err, "unknown category") {
		t.Errorf("expected category validation, got %q", m.err)
	}
}

func TestAdminCreateDeal(t *testing.T) {
	var gotReq client.CreateDealRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/deals" {
			json.NewDecoder(r.Body).Decode(&gotReq)
			json.NewEncoder(w).Encode(map[string]any{"_id": "d1", "title": gotReq.Title})
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	m := newTestAdminModel(t, client.New(srv.URL, "tok"))
	m.section = sectionDeals
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	for _, r := range "Summer GPU sale" {
		m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "gpu" {
		m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	if m.creating {
		t.Error("expected form closed on submit")
	}
	msg := cmd().(adminActionMsg)
	if msg.err != nil {
		t.Fatalf("create failed: %v", msg.err)
	}
	if gotReq.Title != "Summer GPU sale" || gotReq.Category != "gpu" {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if gotReq.Discount != 10 {
		t.Errorf("expected default discount 10, got %d", gotReq.Discount)
	}
	if !gotReq.EndsAt.After(gotReq.StartsAt) {
		t.Error("expected deal window to end after it starts")
	}
}

func TestAdminEmptySectionsRenderConsistently(t *testing.T) {
	m := newTestAdminModel(t, nil)
	for s := adminSection(0); s < sectionCount; s++ {
		m.section = s
		if strings.Contains(m.sectionView(), "copy id") {
			t.Errorf("section %v: expected no action hints for an empty list", s)
		}
	}
	m.section = sectionDeals
	if !strings.Contains(m.sectionView(), "press n") {
		t.Error("expected the empty deals section to hint at creation")
	}
}

func TestAdminViewRendersSections(t *testing.T) {
	m := newTestAdminModel(t, nil)
	m.orders = []domain.Order{{ID: "order-77", UserName: "Priya", TotalPrice: 99, CreatedAt: time.Now()}}

	view := m.View()
	if !strings.Contains(view, "orders") || !strings.Contains(view, "users") {
		t.Errorf("expected section tabs, got:\n%s", view)
	}
	if !strings.Contains(view, "Priya") {
		t.Errorf("expected order row, got:\n%s", view)
	}
}
