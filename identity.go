package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// userRecord pairs the public User with its credential hash. The hash never
// leaves the store.
type userRecord struct {
	user         User
	passwordHash []byte
}

// IdentityStore holds registered users and the current-session marker.
// The registry itself is in-memory; only the session marker is persisted,
// as a small JSON file, so a restarted process picks the session back up.
type IdentityStore struct {
	mu          sync.Mutex
	byEmail     map[string]*userRecord
	byID        map[string]*userRecord
	session     *User
	sessionFile string
}

// NewIdentityStore builds an empty registry and restores the session marker
// from sessionFile if one was left behind by a previous run.
func NewIdentityStore(sessionFile string) *IdentityStore {
	s := &IdentityStore{
		byEmail:     make(map[string]*userRecord),
		byID:        make(map[string]*userRecord),
		sessionFile: sessionFile,
	}
	s.restoreSession()
	return s
}

// Register creates a new user, stores it and sets it as the current session.
// Email matching is case-sensitive exact match.
func (s *IdentityStore) Register(email, password, name string, age int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return User{}, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	u := User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Age:   age,
		Bio:   "",
		Photo: placeholderPhoto(len(s.byID)),
	}
	rec := &userRecord{user: u, passwordHash: hash}
	s.byEmail[email] = rec
	s.byID[u.ID] = rec

	s.setSessionLocked(u)
	return u, nil
}

// Authenticate checks the credentials and, on success, sets the session.
// Any mismatch, including an unknown email, reports ErrInvalidCredentials.
func (s *IdentityStore) Authenticate(email, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byEmail[email]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	s.setSessionLocked(rec.user)
	return rec.user, nil
}

// UserByID looks up a registered user.
func (s *IdentityStore) UserByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	return rec.user, true
}

// CurrentUser reads the session marker.
func (s *IdentityStore) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return User{}, false
	}
	return *s.session, true
}

// ClearSession drops the session marker and its file. Idempotent.
func (s *IdentityStore) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := os.Remove(s.sessionFile); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to remove session file:", err)
	}
}

func (s *IdentityStore) setSessionLocked(u User) {
	s.session = &u
	data, err := json.Marshal(u)
	if err != nil {
		log.Println("Failed to serialize session:", err)
		return
	}
	if err := os.WriteFile(s.sessionFile, data, 0o600); err != nil {
		// The session still works for this process; only restore is lost.
		log.Println("Failed to persist session file:", err)
	}
}

func (s *IdentityStore) restoreSession() {
	data, err := os.ReadFile(s.sessionFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Println("Failed to read session file:", err)
		}
		return
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil || strings.TrimSpace(u.ID) == "" {
		log.Println("Ignoring unreadable session file")
		return
	}
	s.session = &u
}

// placeholderPhoto assigns a stock portrait to a fresh registration, cycling
// through the same gallery the seed profiles use.
func placeholderPhoto(n int) string {
	return fmt.Sprintf("https://randomuser.me/api/portraits/lego/%d.jpg", n%10)
}
