// Package session holds the member's bearer token between runs and answers
// the one question checkout asks before any network call: is there a usable
// token right now.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenKey = "session"

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrSessionExpired   = errors.New("session expired, log in again")
)

// Storage is the same key/value surface the cart persists through.
type Storage interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

type Manager struct {
	storage Storage
	now     func() time.Time
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage, now: time.Now}
}

type claims struct {
	jwt.RegisteredClaims
	MemberID string `json:"member_id"`
}

// parseClaims reads the token's claims without verifying the signature.
// Verification is the backend's job; the client only needs the member id and
// the expiry to decide whether a request is worth sending.
func parseClaims(token string) (claims, error) {
	var c claims
	_, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), &c)
	if err != nil {
		return claims{}, fmt.Errorf("parse session token: %w", err)
	}
	return c, nil
}

// Login stores the bearer token issued by the backend. Unparseable or
// already-expired tokens are rejected.
func (m *Manager) Login(ctx context.Context, token string) error {
	c, err := parseClaims(token)
	if err != nil {
		return err
	}
	if c.ExpiresAt != nil && !m.now().Before(c.ExpiresAt.Time) {
		return ErrSessionExpired
	}
	if err := m.storage.SetValue(ctx, tokenKey, strings.TrimSpace(token)); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	if err := m.storage.DeleteValue(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or ErrNotAuthenticated /
// ErrSessionExpired when there is nothing usable to send.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, ok, err := m.storage.GetValue(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrNotAuthenticated
	}

	c, err := parseClaims(token)
	if err != nil {
		return "", ErrNotAuthenticated
	}
	if c.ExpiresAt != nil && !m.now().Before(c.ExpiresAt.Time) {
		return "", ErrSessionExpired
	}
	return token, nil
}

// MemberID extracts the member identity from the stored token. The explicit
// member_id claim wins; older tokens carry it in the subject.
func (m *Manager) MemberID(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	c, err := parseClaims(token)
	if err != nil {
		return "", ErrNotAuthenticated
	}
	if c.MemberID != "" {
		return c.MemberID, nil
	}
	if c.Subject != "" {
		return c.Subject, nil
	}
	return "", ErrNotAuthenticated
}
