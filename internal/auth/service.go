package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keyInfo = "presence-server session v1"

// ErrNoSession is returned when a request carries no usable session token.
var ErrNoSession = errors.New("no session")

// Service encodes and decodes client sessions.
type Service struct {
	jwtConfig *JWTConfig
}

// NewService creates a session service.
func NewService(jwtConfig *JWTConfig) *Service {
	return &Service{jwtConfig: jwtConfig}
}

// DeriveKey expands a configured secret into a signing key.
// An empty secret yields a random key, so sessions do not survive a restart.
func DeriveKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	if secret == "" {
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("random key: %w", err)
		}
		return key, nil
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// Load decodes a session from token. An empty, tampered or expired token
// yields ErrNoSession; callers start a fresh session in that case.
func (s *Service) Load(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := ValidateToken(s.jwtConfig, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return newSession(claims.Values), nil
}

// Save encodes the session values into a token.
func (s *Service) Save(sess *Session) (string, error) {
	token, err := GenerateToken(s.jwtConfig, sess.values)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	sess.dirty = false
	return token, nil
}

// Session is a per-client store of string values.
type Session struct {
	values map[string]string
	dirty  bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return newSession(nil)
}

func newSession(values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{values: values}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and marks the session for saving.
func (s *Session) Set(key, value string) {
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	return s.dirty
}
