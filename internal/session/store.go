// Package session owns the authentication state of the process: at most one
// (token, user) pair, durable across runs. Everything else reads it through
// Token/IsAuthenticated; only Login and Logout mutate it.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
	"github.com/Minahil-Hamza/taskdesk/internal/logger"
)

// persisted is the on-disk shape: the token and the user travel together in
// a single document so a partially written session cannot exist.
type persisted struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

type Store struct {
	mu    sync.Mutex
	path  string
	token string
	user  *domain.User
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Restore loads a previously persisted session. Anything malformed degrades
// to "not authenticated" and the persisted slot is cleared; Restore itself
// never fails.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.token = ""
		s.user = nil
		return
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil || p.AccessToken == "" {
		logger.DebugLog(context.Background(), "discarding malformed session file %s", s.path)
		_ = os.Remove(s.path)
		s.token = ""
		s.user = nil
		return
	}

	s.token = p.AccessToken
	user := p.User
	s.user = &user
}

// Login stores the authenticated session in memory and on disk. The write
// goes through a temp file and rename so readers never observe a torn
// session. A failed write is logged and ignored: the in-memory session is
// still valid for the rest of the run.
func (s *Store) Login(resp domain.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = resp.AccessToken
	user := resp.User
	s.user = &user

	if err := s.persist(persisted{AccessToken: resp.AccessToken, User: resp.User}); err != nil {
		logger.ErrorLog(context.Background(), "failed to persist session: %v", err)
	}
}

// Logout clears both the in-memory and persisted session unconditionally.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	_ = os.Remove(s.path)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current user and whether a session exists.
func (s *Store) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) persist(p persisted) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
