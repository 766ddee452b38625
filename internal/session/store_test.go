package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ashwinpillay/voltcart/pkg/domain"
)

func testUser() domain.User {
	return domain.User{ID: "u1", Name: "Dana", Email: "dana@example.com", IsAdmin: false}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(NewStorage(dir)), dir
}

func TestHydrate_EmptyStorage(t *testing.T) {
	s, _ := newTestStore(t)

	if !s.Loading() {
		t.Error("expected Loading=true before Hydrate")
	}
	s.Hydrate()
	if s.Loading() {
		t.Error("expected Loading=false after Hydrate")
	}
	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after hydrating empty storage")
	}
}

func TestSetHydrateRoundTrip(t *testing.T) {
	s, dir := newTestStore(t)
	s.Hydrate()

	u := testUser()
	if err := s.Set("tok-abc", u); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Simulated reload: fresh store over the same directory.
	s2 := NewStore(NewStorage(dir))
	s2.Hydrate()

	if got := s2.Token(); got != "tok-abc" {
		t.Errorf("Token = %q, want %q", got, "tok-abc")
	}
	got, ok := s2.User()
	if !ok {
		t.Fatal("expected user after round-trip")
	}
	if got != u {
		t.Errorf("User = %+v, want %+v", got, u)
	}
}

func TestAuthenticatedInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	s.Hydrate()

	if s.IsAuthenticated() {
		t.Error("empty store must not be authenticated")
	}
	if err := s.Set("t", testUser()); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Error("store with token+user must be authenticated")
	}
	if s.IsAdmin() {
		t.Error("non-admin user must not report IsAdmin")
	}
	s.Clear()
	if s.IsAuthenticated() {
		t.Error("cleared store must not be authenticated")
	}

	admin := testUser()
	admin.IsAdmin = true
	if err := s.Set("t2", admin); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !s.IsAdmin() {
		t.Error("admin user must report IsAdmin")
	}
}

func TestClearIdempotent(t *testing.T) {
	s, dir := newTestStore(t)
	s.Hydrate()
	if err := s.Set("t", testUser()); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	s.Clear()
	s.Clear()

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after double Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, tokenFile)); !os.IsNotExist(err) {
		t.Error("token entry should be gone after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, userFile)); !os.IsNotExist(err) {
		t.Error("user entry should be gone after Clear")
	}
}

func TestHydrate_TokenWithoutUserIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte("abc"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(NewStorage(dir))
	s.Hydrate()

	if s.IsAuthenticated() {
		t.Error("token without user must hydrate as signed out")
	}
	if _, err := os.Stat(filepath.Join(dir, tokenFile)); !os.IsNotExist(err) {
		t.Error("corrupt token entry should be removed by Hydrate")
	}
}

func TestHydrate_UserWithoutTokenIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, userFile), []byte(`{"_id":"u1","name":"A","email":"a@b.com"}`), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(NewStorage(dir))
	s.Hydrate()

	if s.IsAuthenticated() {
		t.Error("user without token must hydrate as signed out")
	}
	if _, err := os.Stat(filepath.Join(dir, userFile)); !os.IsNotExist(err) {
		t.Error("orphan user entry should be removed by Hydrate")
	}
}

func TestHydrate_InvalidUserJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte("abc"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(NewStorage(dir))
	s.Hydrate()

	if s.IsAuthenticated() {
		t.Error("undecodable user entry must hydrate as signed out")
	}
	if _, err := os.Stat(filepath.Join(dir, tokenFile)); !os.IsNotExist(err) {
		t.Error("both entries should be removed when the user entry is corrupt")
	}
}

func TestMerge(t *testing.T) {
	s, dir := newTestStore(t)
	s.Hydrate()
	if err := s.Set("tok", testUser()); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	merged, err := s.Merge(domain.ProfilePatch{Name: "Dana K"})
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if merged.Name != "Dana K" {
		t.Errorf("merged.Name = %q, want %q", merged.Name, "Dana K")
	}
	if merged.Email != "dana@example.com" {
		t.Errorf("merged.Email = %q, want unchanged", merged.Email)
	}
	if got := s.Token(); got != "tok" {
		t.Errorf("Token changed by Merge: %q", got)
	}

	// Write-through: a reload observes the merged profile.
	s2 := NewStore(NewStorage(dir))
	s2.Hydrate()
	u, ok := s2.User()
	if !ok || u.Name != "Dana K" {
		t.Errorf("reloaded user = %+v, want merged name", u)
	}
}

func TestMerge_NoSession(t *testing.T) {
	s, _ := newTestStore(t)
	s.Hydrate()

	if _, err := s.Merge(domain.ProfilePatch{Name: "X"}); !errors.Is(err, ErrNoSession) {
		t.Errorf("Merge on empty store = %v, want ErrNoSession", err)
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := newTestStore(t)
	s.Hydrate()

	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	if err := s.Set("t", testUser()); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls after Set = %d, want 1", calls)
	}

	s.Clear()
	if calls != 2 {
		t.Errorf("calls after Clear = %d, want 2", calls)
	}

	unsub()
	s.Clear()
	if calls != 2 {
		t.Errorf("calls after unsubscribe = %d, want 2", calls)
	}
}
