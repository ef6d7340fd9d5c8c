package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	values map[string]string
}

func newMemKV() *memKV { return &memKV{values: make(map[string]string)} }

func (m *memKV) GetValue(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) SetValue(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memKV) DeleteValue(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func signedToken(t *testing.T, memberID string, expiresAt time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"member_id": memberID,
		"sub":       memberID,
		"exp":       expiresAt.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func managerAt(t *testing.T, now time.Time) (*Manager, *memKV) {
	t.Helper()
	kv := newMemKV()
	m := NewManager(kv)
	m.now = func() time.Time { return now }
	return m, kv
}

func TestLoginAndToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	m, _ := managerAt(t, now)

	token := signedToken(t, "mem-42", now.Add(time.Hour))
	require.NoError(t, m.Login(ctx, token))

	got, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	id, err := m.MemberID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mem-42", id)
}

func TestTokenMissing(t *testing.T) {
	m, _ := managerAt(t, time.Now())
	_, err := m.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestTokenExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	m, kv := managerAt(t, now)

	kv.values["session"] = signedToken(t, "mem-42", now.Add(-time.Minute))

	_, err := m.Token(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLoginRejectsGarbage(t *testing.T) {
	m, kv := managerAt(t, time.Now())
	assert.Error(t, m.Login(context.Background(), "not-a-jwt"))
	assert.Empty(t, kv.values)
}

func TestGarbageStoredTokenIsNotAuthenticated(t *testing.T) {
	m, kv := managerAt(t, time.Now())
	kv.values["session"] = "corrupted"

	_, err := m.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m, _ := managerAt(t, now)

	require.NoError(t, m.Login(ctx, signedToken(t, "mem-42", now.Add(time.Hour))))
	require.NoError(t, m.Logout(ctx))

	_, err := m.Token(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
