package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session is the authenticated view handed to handlers after a successful
// gate check.
type Session struct {
	Username string
	Role     string
}

type sessionRecord struct {
	username  string
	role      string
	expiresAt time.Time
	flash     string
}

// SessionStore keeps sessions server-side, keyed by a random token. The
// cookie value is token.hexHMAC(secret), so a tampered cookie fails the
// signature check before any lookup happens. Every login mints a fresh
// token; tokens are never reused across logins.
type SessionStore struct {
	secret []byte
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionRecord
}

func NewSessionStore(secret string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]*sessionRecord),
	}
}

// Create issues a new session and returns the signed cookie value.
func (s *SessionStore) Create(username, role string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)

	s.mu.Lock()
	s.sessions[token] = &sessionRecord{
		username:  username,
		role:      role,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token + "." + s.sign(token), nil
}

// Lookup validates the cookie signature and expiry and returns the session.
// Expired sessions are removed on sight.
func (s *SessionStore) Lookup(cookieValue string) (Session, bool) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return Session{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(record.expiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return Session{Username: record.username, Role: record.role}, true
}

// Destroy ends the session. A forged or already-gone cookie is a no-op.
func (s *SessionStore) Destroy(cookieValue string) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SetFlash attaches a one-shot message to the session.
func (s *SessionStore) SetFlash(cookieValue, message string) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return
	}

	s.mu.Lock()
	if record, exists := s.sessions[token]; exists {
		record.flash = message
	}
	s.mu.Unlock()
}

// PopFlash returns the pending message and clears it.
func (s *SessionStore) PopFlash(cookieValue string) string {
	token, ok := s.verify(cookieValue)
	if !ok {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.sessions[token]
	if !exists {
		return ""
	}
	message := record.flash
	record.flash = ""
	return message
}

func (s *SessionStore) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionStore) verify(cookieValue string) (string, bool) {
	token, signature, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}
