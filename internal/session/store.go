// Package session holds the single source of truth for "who is logged in".
//
// The store keeps a token and a user profile in memory, writes through to
// durable storage on every mutation, and notifies subscribers on change so
// views can react to a logout without polling. The two fields are maintained
// both-or-neither: a session with only one of them is corrupt and is cleared
// wholesale.
package session

import (
	"errors"
	"sync"

	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// ErrNoSession is returned by Merge when no session is active.
var ErrNoSession = errors.New("no active session")

// Store is the process-wide session store.
type Store struct {
	mu       sync.Mutex
	storage  *Storage
	token    string
	user     *domain.User
	hydrated bool
	subs     map[int]func()
	nextSub  int
}

// NewStore creates a Store backed by the given storage. The store starts
// empty and un-hydrated; call Hydrate before making access decisions.
func NewStore(storage *Storage) *Store {
	return &Store{
		storage: storage,
		subs:    make(map[int]func()),
	}
}

// Hydrate restores the session from durable storage. If either entry is
// missing or the user record does not deserialize, both entries are removed
// and the store stays signed out. The store is marked hydrated on every path,
// including failures, so guards stop reporting Loading.
func (s *Store) Hydrate() {
	s.mu.Lock()
	token := s.storage.ReadToken()
	user, err := s.storage.ReadUser()
	if token == "" || err != nil {
		// Corrupt or absent: wipe whichever half exists.
		if token != "" || err == nil {
			s.storage.Remove()
		}
		s.token = ""
		s.user = nil
	} else {
		s.token = token
		s.user = user
	}
	s.hydrated = true
	s.mu.Unlock()
	s.notify()
}

// Loading reports whether Hydrate has not yet completed.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hydrated
}

// Set replaces both session fields and writes them through to storage.
// Used after a successful login or register.
func (s *Store) Set(token string, user domain.User) error {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	err := s.storage.Write(token, user)
	s.mu.Unlock()
	s.notify()
	return err
}

// Merge shallow-merges profile fields into the current user, in memory and in
// storage. The token is unchanged. Returns ErrNoSession when signed out.
func (s *Store) Merge(patch domain.ProfilePatch) (domain.User, error) {
	s.mu.Lock()
	if s.token == "" || s.user == nil {
		s.mu.Unlock()
		return domain.User{}, ErrNoSession
	}
	merged := patch.Apply(*s.user)
	s.user = &merged
	err := s.storage.Write(s.token, merged)
	s.mu.Unlock()
	s.notify()
	return merged, err
}

// Clear empties both fields and removes the durable entries. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.storage.Remove()
	s.mu.Unlock()
	s.notify()
}

// Token returns the current credential token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current profile and whether one is present.
func (s *Store) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated returns true iff both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// IsAdmin returns true iff authenticated and the user holds the admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil && s.user.IsAdmin
}

// Subscribe registers fn to run after every session change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify runs subscribers outside the lock so they can call back into the store.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
