package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwinpillay/voltcart/pkg/domain"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Storage persists the two session entries (token and user profile) as files
// under a single directory, so a session survives process restarts.
type Storage struct {
	dir string
}

// NewStorage creates a Storage rooted at dir. The directory is created on the
// first write, not here.
func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

// DefaultDir returns ~/.voltcart.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".voltcart"), nil
}

// ReadToken returns the persisted token, or "" if absent.
func (s *Storage) ReadToken() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ReadUser returns the persisted user profile. A missing file or a body that
// fails to deserialize returns (nil, err); callers treat both as corrupt.
func (s *Storage) ReadUser() (*domain.User, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, fmt.Errorf("read user entry: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user entry: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("decode user entry: missing _id")
	}
	return &u, nil
}

// Write persists both entries. Called with both values so the on-disk state
// can never hold a token without a user or vice versa past a full write.
func (s *Storage) Write(token string, user domain.User) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0600); err != nil {
		return fmt.Errorf("write user entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("write token entry: %w", err)
	}
	return nil
}

// Remove deletes both entries. Missing files are not an error.
func (s *Storage) Remove() {
	os.Remove(filepath.Join(s.dir, tokenFile)) //nolint:errcheck // best-effort cleanup
	os.Remove(filepath.Join(s.dir, userFile))  //nolint:errcheck // best-effort cleanup
}
