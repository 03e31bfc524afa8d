// Package admin implements password-based admin authentication with
// in-memory opaque session tokens.
//
// Sessions are process-local: a restart invalidates every issued token.
// Expired sessions are swept lazily on each call rather than by a
// background goroutine.
package admin

import (
	"crypto/subtle"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/iconreg/token"
)

// Service verifies the shared admin password and manages session tokens.
type Service struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time
}

// New reads the admin password from the configured file and returns a
// Service with an empty session table.
func New(cfg Config) (*Service, error) {
	raw, err := os.ReadFile(cfg.PasswordFile)
	if err != nil {
		return nil, errx.Wrap(
			err,
			errx.WithCode(CodePasswordFileUnreadable),
			errx.WithDetails(errx.D{"file": cfg.PasswordFile}),
		)
	}

	return &Service{
		password: strings.TrimSpace(string(raw)),
		ttl:      cfg.SessionTTL,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}, nil
}

// VerifyPassword checks the submitted password and, on success, issues a new
// session token valid for the configured TTL.
func (s *Service) VerifyPassword(password string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", time.Time{}, errx.New(
			"Invalid password",
			errx.WithType(errx.T_Authentication),
			errx.WithCode(CodeInvalidPassword),
		)
	}

	tok := token.NewOpaqueToken()
	expiresAt := s.now().Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[tok] = expiresAt

	return tok, expiresAt, nil
}

// VerifyToken reports whether the token belongs to a live session.
func (s *Service) VerifyToken(tok string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	_, ok := s.sessions[tok]
	return ok
}

// Logout removes the session, if any. Unknown tokens are a no-op.
func (s *Service) Logout(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	delete(s.sessions, tok)
}

// sweepLocked drops expired sessions. Callers must hold s.mu.
func (s *Service) sweepLocked() {
	now := s.now()
	for tok, expiresAt := range s.sessions {
		if !now.Before(expiresAt) {
			delete(s.sessions, tok)
		}
	}
}
