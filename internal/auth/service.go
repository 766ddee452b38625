// Package auth performs credential exchange with the backend and drives
// session store transitions. It never renders anything; callers surface the
// Result however they like.
package auth

import (
	"context"
	"errors"

	"github.com/ashwinpillay/voltcart/internal/session"
	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// netFailureMessage is shown when the request itself could not complete.
const netFailureMessage = "network error — could not reach the store, try again"

// FailureKind classifies why a login or register attempt failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureInvalidCredentials: the API rejected the attempt; Message carries
	// the server's words verbatim.
	FailureInvalidCredentials
	// FailureNetwork: no usable response was received.
	FailureNetwork
	// FailureMalformedResponse: 2xx response missing required fields. Shown to
	// users as a network failure but kept distinct for diagnostics.
	FailureMalformedResponse
)

// Result is the outcome of a login or register attempt.
type Result struct {
	OK      bool
	Kind    FailureKind
	Message string
	User    *domain.User
}

// Service wraps the API client and the session store.
type Service struct {
	client *client.Client
	store  *session.Store
}

// NewService creates an auth service over the shared client and store.
func NewService(c *client.Client, store *session.Store) *Service {
	return &Service{client: c, store: store}
}

// Login exchanges credentials for a session. On success the session store and
// the client's bearer token are both updated before returning.
func (s *Service) Login(ctx context.Context, email, password string) Result {
	sess, err := s.client.Login(ctx, email, password)
	if err != nil {
		return failure(err)
	}
	return s.establish(sess)
}

// Register creates an account and, on success, behaves as an implicit login.
func (s *Service) Register(ctx context.Context, name, email, password string) Result {
	sess, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return failure(err)
	}
	return s.establish(sess)
}

// Logout clears the session. No server round-trip: the token is stateless
// from this client's point of view.
func (s *Service) Logout() {
	s.client.SetToken("")
	s.store.Clear()
}

// UpdateProfile merges confirmed profile changes into the session. It does not
// call the API; persist with client.UpdateProfile first and only merge on
// success.
func (s *Service) UpdateProfile(patch domain.ProfilePatch) (domain.User, error) {
	return s.store.Merge(patch)
}

func (s *Service) establish(sess *client.AuthSession) Result {
	s.client.SetToken(sess.Token)
	res := Result{OK: true, User: &sess.User}
	if err := s.store.Set(sess.Token, sess.User); err != nil {
		// Signed in for this run; the session just won't survive a restart.
		res.Message = "signed in, but the session could not be saved"
	}
	return res
}

// failure maps client errors onto the result taxonomy. The session store is
// untouched on every failure path.
func failure(err error) Result {
	if errors.Is(err, client.ErrMalformedResponse) {
		return Result{Kind: FailureMalformedResponse, Message: netFailureMessage}
	}
	if msg, ok := client.APIMessage(err); ok {
		return Result{Kind: FailureInvalidCredentials, Message: msg}
	}
	return Result{Kind: FailureNetwork, Message: netFailureMessage}
}
